package db

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/ps"
	"github.com/nickyhof/PrimitiveDB/sql"
)

const benchRows = 200

func benchIdentity() core.Identity {
	return core.Identity{Name: "benchmark", Email: "bench@test.com"}
}

// setupBenchmarkEngine creates an engine over store holding benchRows users.
func setupBenchmarkEngine(b *testing.B, store ps.Store, codec ps.Codec) *Engine {
	b.Helper()

	documents := ps.NewDocuments(store, codec, benchIdentity(), nil)
	engine := NewEngine(documents, nil)

	if _, err := engine.Execute("create_table users name:str age:int city:str"); err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	for i := 1; i <= benchRows; i++ {
		line := "insert into users values ('User" + strconv.Itoa(i) + "', " + strconv.Itoa(20+i%50) + ", 'City" + strconv.Itoa(i%10) + "')"
		if _, err := engine.Execute(line); err != nil {
			b.Fatalf("Failed to insert: %v", err)
		}
	}

	return engine
}

func setupMemoryBenchmark(b *testing.B) *Engine {
	persistence, err := ps.NewMemoryPersistence()
	if err != nil {
		b.Fatalf("Failed to initialize persistence: %v", err)
	}
	return setupBenchmarkEngine(b, persistence, ps.JSONCodec{})
}

func setupBoltBenchmark(b *testing.B) *Engine {
	store, err := ps.NewBoltPersistence(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatalf("Failed to open bolt: %v", err)
	}
	b.Cleanup(func() { store.Close() })
	return setupBenchmarkEngine(b, store, ps.MsgpackCodec{})
}

func BenchmarkParsing(b *testing.B) {
	lines := []struct {
		name string
		line string
	}{
		{"SelectAll", "select from users"},
		{"SelectWhere", "select from users where city = City5"},
		{"Insert", "insert into users values ('Test', 25, 'NYC')"},
		{"Update", "update users set age = 30, city = 'New York' where ID = 1"},
		{"Delete", "delete from users where ID = 1"},
	}

	for _, l := range lines {
		b.Run(l.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := sql.NewParser(l.line).Parse(); err != nil {
					b.Fatalf("Parse error: %v", err)
				}
			}
		})
	}
}

func BenchmarkSelectWhere(b *testing.B) {
	for name, setup := range map[string]func(*testing.B) *Engine{
		"GitMemory": setupMemoryBenchmark,
		"Bolt":      setupBoltBenchmark,
	} {
		b.Run(name, func(b *testing.B) {
			engine := setup(b)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				engine.Cache.Invalidate("users")
				if _, err := engine.Execute("select from users where city = City5"); err != nil {
					b.Fatalf("Execute error: %v", err)
				}
			}
		})
	}
}

func BenchmarkSelectCached(b *testing.B) {
	engine := setupMemoryBenchmark(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.Execute("select from users where city = City5"); err != nil {
			b.Fatalf("Execute error: %v", err)
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	engine := setupBoltBenchmark(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.Execute("insert into users values ('Bench', 30, 'Oslo')"); err != nil {
			b.Fatalf("Execute error: %v", err)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	engine := setupMemoryBenchmark(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		line := "update users set age = " + strconv.Itoa(i%90) + " where ID = 1"
		if _, err := engine.Execute(line); err != nil {
			b.Fatalf("Execute error: %v", err)
		}
	}
}
