package todo

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("todo: not found")

// Repository is the read contract the HTTP layer depends on.
type Repository interface {
	// Search returns one page of todos satisfying every spec, most recently modified first.
	Search(ctx context.Context, page Page, specs ...Spec) (SearchResult, error)
	// FindByIDWithUser loads a todo together with its owner.
	FindByIDWithUser(ctx context.Context, id int64) (TodoWithUser, error)
}
