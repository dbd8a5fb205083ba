package todo

import (
	"math"
	"time"

	"taskboard/internal/auth"
)

// Todo is a single task entry. ModifiedAt is the last-modified timestamp the
// UpdatedAfter/UpdatedBefore predicates compare against.
type Todo struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Contents   string    `json:"contents" db:"contents"`
	Weather    string    `json:"weather" db:"weather"`
	UserID     int64     `json:"user_id" db:"user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ModifiedAt time.Time `json:"modified_at" db:"modified_at"`
}

// User is the owner of a todo as stored in the users table.
type User struct {
	ID       int64     `json:"id" db:"id"`
	Email    string    `json:"email" db:"email"`
	Nickname string    `json:"nickname" db:"nickname"`
	Role     auth.Role `json:"user_role" db:"user_role"`
}

type TodoWithUser struct {
	Todo
	User User `json:"user"`
}

// Page selects a window of search results. Numbers start at 1.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPageNumber keeps Offset within int range for any page size.
	MaxPageNumber = math.MaxInt / MaxPageSize
)

func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Number - 1) * p.Size
}

type SearchResult struct {
	Items []Todo `json:"items"`
	Total int    `json:"total"`
	Page  Page   `json:"page"`
}
