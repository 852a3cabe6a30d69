package orm

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/pkg/e"
)

type item struct {
	ID   uint
	Name string
}

func seeded(t *testing.T, n int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&item{}))

	for i := 1; i <= n; i++ {
		require.NoError(t, db.Create(&item{Name: fmt.Sprintf("item-%02d", i)}).Error)
	}
	return db
}

func TestPaginate(t *testing.T) {
	db := seeded(t, 7)

	var page []item
	p, err := New(context.Background(), db).Model(&item{}).Paginate(2, 3, "id asc", &page)
	require.NoError(t, err)

	assert.Equal(t, Pagination{Page: 2, PerPage: 3, Total: 7, LastPage: 3, From: 4, To: 6}, p)
	require.Len(t, page, 3)
	assert.Equal(t, uint(4), page[0].ID)
}

func TestPaginateLastPartialPage(t *testing.T) {
	db := seeded(t, 7)

	var page []item
	p, err := New(context.Background(), db).Model(&item{}).Paginate(3, 3, "id asc", &page)
	require.NoError(t, err)

	assert.Len(t, page, 1)
	assert.Equal(t, 7, p.From)
	assert.Equal(t, 7, p.To)
}

func TestPaginateBeyondEnd(t *testing.T) {
	db := seeded(t, 2)

	var page []item
	p, err := New(context.Background(), db).Model(&item{}).Paginate(5, 10, "id asc", &page)
	require.NoError(t, err)

	assert.Empty(t, page)
	assert.Zero(t, p.From)
	assert.Zero(t, p.To)
	assert.Equal(t, 1, p.LastPage)
}

func TestPaginateEmptyTable(t *testing.T) {
	db := seeded(t, 0)

	var page []item
	p, err := New(context.Background(), db).Model(&item{}).Paginate(0, 0, "id asc", &page)
	require.NoError(t, err)

	assert.Equal(t, Pagination{Page: 1, PerPage: 1, Total: 0, LastPage: 1}, p)
}

func TestFirstMapsNotFound(t *testing.T) {
	db := seeded(t, 1)

	var got item
	require.NoError(t, New(context.Background(), db).Where("id = ?", 1).First(&got))
	assert.Equal(t, "item-01", got.Name)

	err := New(context.Background(), db).Where("id = ?", 99).First(&got)
	assert.ErrorIs(t, err, e.ErrNotFound)
}
