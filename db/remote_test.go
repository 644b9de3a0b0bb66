package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectScheme(t *testing.T) {
	tests := []struct {
		path     string
		expected urlScheme
	}{
		{"out.csv", schemeLocal},
		{"/tmp/out.csv", schemeLocal},
		{"file:///tmp/out.csv", schemeFile},
		{"S3://bucket/key.csv", schemeS3},
		{"http://example.com/x", schemeHTTP},
		{"https://example.com/x", schemeHTTPS},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, detectScheme(tt.path), tt.path)
	}
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://data/exports/users.csv")
	require.NoError(t, err)
	assert.Equal(t, "data", bucket)
	assert.Equal(t, "exports/users.csv", key)

	for _, url := range []string{"s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, err := parseS3URL(url)
		assert.Error(t, err, url)
	}
}

func TestExportLocalCSV(t *testing.T) {
	engine := setupTestEngine(t)
	insertTestData(t, engine)

	target := filepath.Join(t.TempDir(), "users.csv")
	cr := mustExecute(t, engine, "export users "+target).(CommitResult)
	assert.Equal(t, 3, cr.RecordsExported)
	assert.Equal(t, target, cr.Location)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ID,name,age\n1,Alice,30\n2,Bob,25\n3,Charlie Brown,30\n", string(data))
}

func TestExportFileURL(t *testing.T) {
	engine := setupTestEngine(t)

	target := filepath.Join(t.TempDir(), "empty.csv")
	mustExecute(t, engine, "export users file://"+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ID,name,age\n", string(data))
}

func TestExportToHTTPFails(t *testing.T) {
	engine := setupTestEngine(t)

	_, err := engine.Execute("export users https://example.com/users.csv")
	assert.Error(t, err)
}
