// Package orm is a small fluent layer over gorm used by the repositories:
// not-found mapping and offset pagination.
package orm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog/pkg/e"
)

type Query struct {
	db *gorm.DB
}

// New starts a query bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// First loads the first match; a miss is e.ErrNotFound.
func (q *Query) First(dest interface{}) error {
	err := q.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return e.ErrNotFound
	}
	return err
}

// Pagination is the page window returned alongside a paginated result.
type Pagination struct {
	Page     int
	PerPage  int
	Total    int64
	LastPage int
	// From and To are 1-based item positions; zero when the page is empty.
	From int
	To   int
}

// Paginate counts the matches, then loads page (1-based) of size perPage into
// dest, which must be a pointer to a slice. order applies to the page query
// only; postgres rejects ORDER BY on a bare COUNT.
func (q *Query) Paginate(page, perPage int, order string, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, fmt.Errorf("orm: count: %w", err)
	}

	p := Pagination{Page: page, PerPage: perPage, Total: total, LastPage: lastPage(total, perPage)}

	err := q.db.Session(&gorm.Session{}).
		Order(order).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(dest).Error
	if err != nil {
		return Pagination{}, fmt.Errorf("orm: page: %w", err)
	}

	offset := int64((page - 1) * perPage)
	if offset < total {
		p.From = int(offset) + 1
		p.To = int(min(offset+int64(perPage), total))
	}
	return p, nil
}

func lastPage(total int64, perPage int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
