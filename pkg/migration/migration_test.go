package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type note struct {
	ID   uint
	Body string
}

type createNotes struct{}

func (createNotes) Up(db *gorm.DB) error   { return db.AutoMigrate(&note{}) }
func (createNotes) Down(db *gorm.DB) error { return db.Migrator().DropTable(&note{}) }

type failing struct{}

func (failing) Up(*gorm.DB) error   { return errors.New("nope") }
func (failing) Down(*gorm.DB) error { return nil }

func withRegistry(t *testing.T, entries ...entry) {
	t.Helper()
	mu.Lock()
	saved := registry
	registry = entries
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestRunRollbackStatus(t *testing.T) {
	withRegistry(t, entry{name: "20260101000000_create_notes", m: createNotes{}})
	db := openDB(t)
	ctx := context.Background()

	var out bytes.Buffer
	r := New(db, &out)

	n, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, db.Migrator().HasTable(&note{}))
	assert.Contains(t, out.String(), "Migrated:  20260101000000_create_notes")

	n, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "second run is a no-op")

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Status{{Name: "20260101000000_create_notes", Ran: true, Batch: 1}}, status)

	n, err = r.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, db.Migrator().HasTable(&note{}))

	status, err = r.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status[0].Ran)
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	withRegistry(t,
		entry{name: "20260101000000_create_notes", m: createNotes{}},
		entry{name: "20260101000001_broken", m: failing{}},
	)
	db := openDB(t)
	ctx := context.Background()

	_, err := New(db, nil).Run(ctx)
	require.Error(t, err)

	status, err := New(db, nil).Status(ctx)
	require.NoError(t, err)
	assert.True(t, status[0].Ran)
	assert.False(t, status[1].Ran)
}

func TestRollbackNothing(t *testing.T) {
	withRegistry(t)
	var out bytes.Buffer

	n, err := New(openDB(t), &out).Rollback(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, out.String(), "Nothing to roll back.")
}
