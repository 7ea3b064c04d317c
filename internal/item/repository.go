package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error)
	Update(ctx context.Context, it *Item) error

	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, itemID string) ([]*Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var itemColumns = []string{
	"id", "name", "description", "available", "owner_id", "request_id", "photo_file_id", "created_at",
}

func scanItem(row pgx.Row, extra ...any) (*Item, error) {
	var it Item
	dest := []any{
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID, &it.PhotoFileID, &it.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&it.ID, &it.CreatedAt); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	where := squirrel.And{}
	if filter.OwnerID != "" {
		where = append(where, squirrel.Eq{"owner_id": filter.OwnerID})
	}

	query := psql.Select(append(itemColumns, "count(*) OVER() AS total_count")...).
		From("public.items").
		Where(where).
		OrderBy("created_at ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	var total int
	for rows.Next() {
		it, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items failed: %w", err)
	}

	// A page past the end carries no window count.
	if len(items) == 0 && filter.Offset > 0 {
		sql, args, err := psql.Select("count(*)").From("public.items").Where(where).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count items query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count items failed: %w", err)
		}
	}

	return items, total, nil
}

func (r *pgxRepository) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items by request query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items by request failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items failed: %w", err)
	}
	return items, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Set("photo_file_id", it.PhotoFileID).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateComment(ctx context.Context, c *Comment) error {
	// The author name is read back in the same statement.
	const query = `
		WITH inserted AS (
			INSERT INTO public.comments (item_id, author_id, text)
			VALUES ($1, $2, $3)
			RETURNING id, author_id, created_at
		)
		SELECT i.id, u.name, i.created_at
		FROM inserted i
		JOIN public.users u ON u.id = i.author_id
	`

	if err := r.pool.QueryRow(ctx, query, c.ItemID, c.AuthorID, c.Text).Scan(&c.ID, &c.AuthorName, &c.CreatedAt); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListComments(ctx context.Context, itemID string) ([]*Comment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("c.id", "c.item_id", "c.author_id", "u.name", "c.text", "c.created_at").
		From("public.comments c").
		Join("public.users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments failed: %w", err)
	}
	return comments, nil
}
