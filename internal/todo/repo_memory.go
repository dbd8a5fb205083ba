package todo

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is a simple in-memory repository for tests and early development.
type MemoryRepo struct {
	mu    sync.Mutex
	todos []Todo
	users map[int64]User
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{users: map[int64]User{}} }

func (r *MemoryRepo) AddUser(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *MemoryRepo) AddTodo(t Todo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.todos = append(r.todos, t)
}

func (r *MemoryRepo) Search(ctx context.Context, page Page, specs ...Spec) (SearchResult, error) {
	page = page.Normalize()

	r.mu.Lock()
	matched := make([]Todo, 0, len(r.todos))
	for _, t := range r.todos {
		if MatchAll(t, specs...) {
			matched = append(matched, t)
		}
	}
	r.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].ModifiedAt.Equal(matched[j].ModifiedAt) {
			return matched[i].ModifiedAt.After(matched[j].ModifiedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	out := SearchResult{Items: []Todo{}, Total: len(matched), Page: page}
	start := page.Offset()
	if start >= len(matched) {
		return out, nil
	}
	end := min(start+page.Size, len(matched))
	out.Items = append(out.Items, matched[start:end]...)
	return out, nil
}

func (r *MemoryRepo) FindByIDWithUser(ctx context.Context, id int64) (TodoWithUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.todos {
		if t.ID != id {
			continue
		}
		u, ok := r.users[t.UserID]
		if !ok {
			return TodoWithUser{}, ErrNotFound
		}
		return TodoWithUser{Todo: t, User: u}, nil
	}
	return TodoWithUser{}, ErrNotFound
}
