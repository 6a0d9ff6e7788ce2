package database

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	files := []string{"0002_b.sql", "0001_a.sql", "0003_c.sql"}

	tests := []struct {
		name    string
		applied map[string]bool
		want    []string
	}{
		{name: "fresh database", applied: map[string]bool{}, want: []string{"0001_a.sql", "0002_b.sql", "0003_c.sql"}},
		{name: "partially applied", applied: map[string]bool{"0001_a": true}, want: []string{"0002_b.sql", "0003_c.sql"}},
		{name: "up to date", applied: map[string]bool{"0001_a": true, "0002_b": true, "0003_c": true}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pendingMigrations(files, tt.applied))
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_init.sql", files[0])

	body, err := migrationFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "coupon_order_order_id_coupon_id_key")
}

func TestDescribePQError(t *testing.T) {
	err := describePQError(&pq.Error{Code: "42601", Position: "12", Message: "syntax error"})
	assert.Contains(t, err.Error(), "code=42601")
	assert.Contains(t, err.Error(), "position=12")

	plain := errors.New("boom")
	assert.Equal(t, plain, describePQError(plain))
}

func TestBuildConnectionString(t *testing.T) {
	db := NewPostgresDB(&DBConfig{Host: "db", Port: 5432, Username: "u", Password: "p@ss", DBName: "shop"})
	assert.Equal(t, "postgresql://u:p%40ss@db:5432/shop?sslmode=disable", db.buildConnectionString())
}
