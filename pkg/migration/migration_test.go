package migration

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/geoinspect/pkg/database"
)

type tableMigration struct {
	table string
	downs int
}

type tableRow struct {
	ID uint
}

func (m *tableMigration) Up(db *gorm.DB) error {
	return db.Table(m.table).AutoMigrate(&tableRow{})
}

func (m *tableMigration) Down(db *gorm.DB) error {
	m.downs++
	return db.Migrator().DropTable(m.table)
}

func withRegistry(t *testing.T) {
	t.Helper()
	saved := registry
	registry = nil
	t.Cleanup(func() { registry = saved })
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func TestRunWithoutMigrations(t *testing.T) {
	withRegistry(t)
	assert.ErrorIs(t, New(openDB(t)).Run(), ErrNoMigrations)
}

func TestRunRollbackStatus(t *testing.T) {
	withRegistry(t)
	db := openDB(t)
	var out bytes.Buffer
	r := New(db).WithOutput(&out)

	second := &tableMigration{table: "second"}
	Register("20260101000001_second", second)
	Register("20260101000000_first", &tableMigration{table: "first"})

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable("first"))
	assert.True(t, db.Migrator().HasTable("second"))
	assert.Less(t,
		bytes.Index(out.Bytes(), []byte("Migrating: 20260101000000_first")),
		bytes.Index(out.Bytes(), []byte("Migrating: 20260101000001_second")))

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	third := &tableMigration{table: "third"}
	Register("20260101000002_third", third)
	require.NoError(t, r.Run())

	out.Reset()
	require.NoError(t, r.Status())
	assert.Regexp(t, `20260101000000_first\s+Ran\s+1`, out.String())
	assert.Regexp(t, `20260101000002_third\s+Ran\s+2`, out.String())

	require.NoError(t, r.Rollback())
	assert.Equal(t, 1, third.downs)
	assert.Equal(t, 0, second.downs)
	assert.False(t, db.Migrator().HasTable("third"))

	out.Reset()
	require.NoError(t, r.Status())
	assert.Regexp(t, `20260101000002_third\s+Pending`, out.String())
}

func TestRollbackNothing(t *testing.T) {
	withRegistry(t)
	var out bytes.Buffer
	require.NoError(t, New(openDB(t)).WithOutput(&out).Rollback())
	assert.Contains(t, out.String(), "Nothing to roll back.")
}
