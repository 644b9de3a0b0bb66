//go:build comparative

package db

import (
	gosql "database/sql"
	"strconv"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
)

// setupDuckDB creates a DuckDB instance with the same rows as
// setupBenchmarkEngine.
func setupDuckDB(b *testing.B) *gosql.DB {
	db, err := gosql.Open("duckdb", "")
	if err != nil {
		b.Fatalf("Failed to open DuckDB: %v", err)
	}

	_, err = db.Exec("CREATE TABLE users (ID INTEGER PRIMARY KEY, name VARCHAR, age INTEGER, city VARCHAR)")
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}

	for i := 1; i <= benchRows; i++ {
		_, err = db.Exec("INSERT INTO users VALUES (?, ?, ?, ?)",
			i, "User"+strconv.Itoa(i), 20+i%50, "City"+strconv.Itoa(i%10))
		if err != nil {
			b.Fatalf("Failed to insert: %v", err)
		}
	}

	return db
}

func consumeUsers(b *testing.B, rows *gosql.Rows) {
	defer rows.Close()
	for rows.Next() {
		var id, age int
		var name, city string
		if err := rows.Scan(&id, &name, &age, &city); err != nil {
			b.Fatalf("Scan error: %v", err)
		}
	}
}

func BenchmarkPrimitiveDB_SelectAll(b *testing.B) {
	engine := setupMemoryBenchmark(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		engine.Cache.Invalidate("users")
		if _, err := engine.Execute("select from users"); err != nil {
			b.Fatalf("Execute error: %v", err)
		}
	}
}

func BenchmarkDuckDB_SelectAll(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT * FROM users")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		consumeUsers(b, rows)
	}
}

func BenchmarkPrimitiveDB_SelectWhere(b *testing.B) {
	engine := setupMemoryBenchmark(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		engine.Cache.Invalidate("users")
		if _, err := engine.Execute("select from users where city = City5"); err != nil {
			b.Fatalf("Execute error: %v", err)
		}
	}
}

func BenchmarkDuckDB_SelectWhere(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT * FROM users WHERE city = ?", "City5")
		if err != nil {
			b.Fatalf("Query error: %v", err)
		}
		consumeUsers(b, rows)
	}
}

func BenchmarkPrimitiveDB_Update(b *testing.B) {
	engine := setupMemoryBenchmark(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.Execute("update users set age = 31 where ID = 1"); err != nil {
			b.Fatalf("Execute error: %v", err)
		}
	}
}

func BenchmarkDuckDB_Update(b *testing.B) {
	db := setupDuckDB(b)
	defer db.Close()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := db.Exec("UPDATE users SET age = 31 WHERE ID = 1"); err != nil {
			b.Fatalf("Exec error: %v", err)
		}
	}
}
