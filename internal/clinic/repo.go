// Package clinic is the data access and side-effect coordination layer of the inbox.
//
// Repo performs one relational operation per method against the injected handle.
// A Repo without a handle stands for an unreachable store: reads degrade to empty
// results and writes fail with common.ErrStoreUnavailable.
package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"gorm.io/gorm"
)

type Repo struct {
	db          *gorm.DB
	ownerOpenID string
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// WithOwner sets the openId promoted to admin on upsert.
func (r *Repo) WithOwner(openID string) *Repo {
	r.ownerOpenID = openID
	return r
}

// Available reports whether a store handle is present.
func (r *Repo) Available() bool {
	return r != nil && r.db != nil
}

func (r *Repo) reader(ctx context.Context) (*gorm.DB, bool) {
	if !r.Available() {
		return nil, false
	}
	return r.db.WithContext(ctx), true
}

func (r *Repo) writer(ctx context.Context) (*gorm.DB, error) {
	if !r.Available() {
		return nil, common.ErrStoreUnavailable
	}
	return r.db.WithContext(ctx), nil
}

// first loads one row; a missing row is not an error.
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// list runs q and always returns a non-nil slice.
func list[T any](q *gorm.DB) ([]T, error) {
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
