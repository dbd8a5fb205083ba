package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskboard/internal/auth"
)

// NOTE: This repository assumes the following tables exist:
// - users (id, email, nickname, user_role)
// - todos (id, title, contents, weather, user_id, created_at, modified_at)

// PostgresRepo reads todos through database/sql (pgx stdlib driver).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Search(ctx context.Context, page Page, specs ...Spec) (SearchResult, error) {
	page = page.Normalize()
	where, args := Where("t", specs...)

	var total int
	countQ := "SELECT COUNT(*) FROM todos t " + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return SearchResult{}, fmt.Errorf("count todos: %w", err)
	}

	out := SearchResult{Items: []Todo{}, Total: total, Page: page}
	if total == 0 || page.Offset() >= total {
		return out, nil
	}

	n := len(args)
	q := fmt.Sprintf(`
SELECT t.id, t.title, t.contents, t.weather, t.user_id, t.created_at, t.modified_at
FROM todos t
%s
ORDER BY t.modified_at DESC, t.id DESC
LIMIT $%d OFFSET $%d
`, where, n+1, n+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search todos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Contents,
			&t.Weather,
			&t.UserID,
			&t.CreatedAt,
			&t.ModifiedAt,
		); err != nil {
			return SearchResult{}, fmt.Errorf("scan todo: %w", err)
		}
		out.Items = append(out.Items, t)
	}
	if err := rows.Err(); err != nil {
		return SearchResult{}, fmt.Errorf("search todos: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) FindByIDWithUser(ctx context.Context, id int64) (TodoWithUser, error) {
	const q = `
SELECT t.id, t.title, t.contents, t.weather, t.user_id, t.created_at, t.modified_at,
       u.id, u.email, u.nickname, u.user_role
FROM todos t
JOIN users u ON u.id = t.user_id
WHERE t.id = $1
`
	var (
		tw   TodoWithUser
		role string
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&tw.ID,
		&tw.Title,
		&tw.Contents,
		&tw.Weather,
		&tw.UserID,
		&tw.CreatedAt,
		&tw.ModifiedAt,
		&tw.User.ID,
		&tw.User.Email,
		&tw.User.Nickname,
		&role,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TodoWithUser{}, ErrNotFound
		}
		return TodoWithUser{}, fmt.Errorf("find todo %d: %w", id, err)
	}

	parsed, err := auth.ParseRole(role)
	if err != nil {
		return TodoWithUser{}, fmt.Errorf("find todo %d: %w", id, err)
	}
	tw.User.Role = parsed
	return tw, nil
}
