package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	List(ctx context.Context, filter Filter) ([]*ItemRequest, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.item_requests").
		Columns("description", "requestor_id").
		Values(req.Description, req.RequestorID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.CreatedAt); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requestor_id", "created_at").
		From("public.item_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item request query failed: %w", err)
	}

	var req ItemRequest
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.Description, &req.RequestorID, &req.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*ItemRequest, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	where := squirrel.And{}
	if filter.RequestorID != "" {
		where = append(where, squirrel.Eq{"requestor_id": filter.RequestorID})
	}
	if filter.ExcludeRequestorID != "" {
		where = append(where, squirrel.NotEq{"requestor_id": filter.ExcludeRequestorID})
	}

	query := psql.Select("id", "description", "requestor_id", "created_at", "count(*) OVER() AS total_count").
		From("public.item_requests").
		Where(where)

	if filter.OrderDesc {
		query = query.OrderBy("created_at DESC", "id DESC")
	} else {
		query = query.OrderBy("created_at ASC", "id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list item requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var list []*ItemRequest
	var total int
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan item request failed: %w", err)
		}
		list = append(list, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate item requests failed: %w", err)
	}

	// A page past the end carries no window count.
	if len(list) == 0 && filter.Offset > 0 {
		sql, args, err := psql.Select("count(*)").From("public.item_requests").Where(where).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count item requests query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count item requests failed: %w", err)
		}
	}

	return list, total, nil
}
