package repository

import (
	"context"
	"errors"
)

// ErrNotFound is the sentinel returned when a lookup targets an identifier
// that does not resolve to a stored document. Repositories never raise for
// absence; the service layer translates this into a user-visible failure.
var ErrNotFound = errors.New("not found")

// Page carries optional pagination. A zero Skip means no offset and a zero
// Limit means no cap; a nil *Page means neither is applied.
type Page struct {
	Skip  int
	Limit int
}

// BaseRepository is the generic persistence contract shared by every
// entity repository. Criteria values are domain-shaped partial entities;
// only their non-zero fields participate in the filter.
type BaseRepository[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context, page *Page) ([]*T, error)
	FindBy(ctx context.Context, criteria *T, page *Page) ([]*T, error)
	Count(ctx context.Context, criteria *T) (int64, error)
	Create(ctx context.Context, data *T) (*T, error)
	Update(ctx context.Context, id string, data *T) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	DeleteMany(ctx context.Context, criteria *T) (int64, error)
}
