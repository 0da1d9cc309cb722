package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecer struct {
	statements []string
	failOn     int
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	if r.failOn > 0 && len(r.statements) == r.failOn {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	return pgconn.CommandTag{}, nil
}

func writeMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_comments.sql"), []byte("CREATE TABLE b();"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_tickets.sql"), []byte("CREATE TABLE a();"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o700))
	return dir
}

func TestRunMigrationsAppliesInOrder(t *testing.T) {
	dir := writeMigrations(t)
	db := &recordingExecer{}

	require.NoError(t, RunMigrations(context.Background(), db, dir, zap.NewNop()))
	require.Equal(t, []string{"CREATE TABLE a();", "CREATE TABLE b();"}, db.statements)
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	dir := writeMigrations(t)
	db := &recordingExecer{failOn: 1}

	err := RunMigrations(context.Background(), db, dir, zap.NewNop())
	require.ErrorContains(t, err, "001_tickets.sql")
	require.Len(t, db.statements, 1)
}

func TestRunMigrationsMissingDir(t *testing.T) {
	err := RunMigrations(context.Background(), &recordingExecer{}, filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	require.Error(t, err)
}

func TestRepositoryMigrationsAreListed(t *testing.T) {
	files, err := MigrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	require.Contains(t, files, "001_init.sql")
}

func TestDisabledBackends(t *testing.T) {
	var pg *Postgres
	require.False(t, pg.Enabled())
	require.Error(t, pg.Ping(context.Background()))
	pg.Close()

	r := &Redis{}
	require.False(t, r.Enabled())
	require.Error(t, r.Ping(context.Background()))
	r.Close()
}
