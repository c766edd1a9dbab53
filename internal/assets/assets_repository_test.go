package assets

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/naruerongk-png/inventory/internal/repository"
	custom_error "github.com/naruerongk-png/inventory/pkg/errors"
	"github.com/naruerongk-png/inventory/pkg/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*AssetsRepository, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return NewRepository(repository.NewRepository(db)), db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestInsertRejectsDuplicateTag(t *testing.T) {
	repo, db := newTestRepository(t)

	_, err := repo.Insert(models.Asset{Tag: strPtr("IT-0001"), Model: "ThinkPad T14", Status: "In Stock"})
	require.NoError(t, err)

	_, err = repo.Insert(models.Asset{Tag: strPtr("IT-0001"), Model: "OptiPlex 7010", Status: "In Stock"})
	assert.True(t, custom_error.IsConflict(err))
	assert.Equal(t, 1, countRows(t, db, "assets"))

	stored, err := repo.GetByTag("IT-0001")
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad T14", stored.Model)
}

func TestInsertRejectsDuplicateGLPIID(t *testing.T) {
	repo, db := newTestRepository(t)

	_, err := repo.Insert(models.Asset{GLPIID: int64Ptr(77), Model: "MacBook Air", Status: "In Stock"})
	require.NoError(t, err)

	_, err = repo.Insert(models.Asset{GLPIID: int64Ptr(77), Tag: strPtr("IT-0002"), Model: "MacBook Pro", Status: "In Stock"})
	assert.True(t, custom_error.IsConflict(err))
	assert.Equal(t, 1, countRows(t, db, "assets"))
}

func TestArchiveMovesRowIntoRecycleBin(t *testing.T) {
	repo, db := newTestRepository(t)

	_, err := repo.Insert(models.Asset{Tag: strPtr("IT-0010"), Model: "ThinkPad T14", Status: "In Stock", Price: 1200})
	require.NoError(t, err)

	require.NoError(t, repo.Archive("IT-0010"))

	assert.Equal(t, 0, countRows(t, db, "assets"))
	assert.Equal(t, 1, countRows(t, db, "recycle_bin"))

	_, err = repo.GetByTag("IT-0010")
	assert.True(t, custom_error.IsNotFound(err))

	require.NoError(t, repo.Restore("IT-0010"))

	assert.Equal(t, 1, countRows(t, db, "assets"))
	assert.Equal(t, 0, countRows(t, db, "recycle_bin"))

	restored, err := repo.GetByTag("IT-0010")
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad T14", restored.Model)
	assert.Equal(t, 1200.0, restored.Price)
}

func TestArchiveReplacesStaleBinEntry(t *testing.T) {
	repo, db := newTestRepository(t)

	_, err := repo.Insert(models.Asset{Tag: strPtr("IT-0100"), Model: "First Unit", Status: "In Stock"})
	require.NoError(t, err)
	require.NoError(t, repo.Archive("IT-0100"))

	// The tag gets reused by a replacement device, which is then retired too.
	_, err = repo.Insert(models.Asset{Tag: strPtr("IT-0100"), Model: "Second Unit", Status: "In Stock"})
	require.NoError(t, err)
	require.NoError(t, repo.Archive("IT-0100"))

	assert.Equal(t, 1, countRows(t, db, "recycle_bin"))

	require.NoError(t, repo.Restore("IT-0100"))

	restored, err := repo.GetByTag("IT-0100")
	require.NoError(t, err)
	assert.Equal(t, "Second Unit", restored.Model)
}

func TestRestoreConflictsWithActiveTag(t *testing.T) {
	repo, db := newTestRepository(t)

	_, err := repo.Insert(models.Asset{Tag: strPtr("IT-0200"), Model: "Old Unit", Status: "In Stock"})
	require.NoError(t, err)
	require.NoError(t, repo.Archive("IT-0200"))

	_, err = repo.Insert(models.Asset{Tag: strPtr("IT-0200"), Model: "New Unit", Status: "In Stock"})
	require.NoError(t, err)

	err = repo.Restore("IT-0200")
	assert.True(t, custom_error.IsConflict(err))

	// The failed restore must not eat the archived copy.
	assert.Equal(t, 1, countRows(t, db, "recycle_bin"))
	assert.Equal(t, 1, countRows(t, db, "assets"))

	active, err := repo.GetByTag("IT-0200")
	require.NoError(t, err)
	assert.Equal(t, "New Unit", active.Model)
}

func TestRestoreUnknownTagNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	err := repo.Restore("IT-9999")
	assert.True(t, custom_error.IsNotFound(err))
}
