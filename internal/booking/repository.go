package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, q Query) ([]*Booking, int, error)
	ListByItem(ctx context.Context, itemID string) ([]*Booking, error)

	// UpdateStatus writes b.Status only if the stored version still equals b.Version.
	// On success b.Version and b.UpdatedAt are refreshed; otherwise ErrConcurrentDecision.
	UpdateStatus(ctx context.Context, b *Booking) error

	// HasFinishedBooking reports whether bookerID has a non-rejected booking of itemID that ended before now.
	HasFinishedBooking(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status", "b.version", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

// listFilters returns the WHERE clauses shared by the page and count queries.
func listFilters(q Query) ([]squirrel.Sqlizer, error) {
	scope, err := roleScope(q.Role, q.SubjectID)
	if err != nil {
		return nil, err
	}
	pred, err := statePredicate(q.State, q.Now)
	if err != nil {
		return nil, err
	}

	filters := []squirrel.Sqlizer{scope}
	if pred != nil {
		filters = append(filters, pred)
	}
	return filters, nil
}

// countBookings builds the total for a filter. Joins match selectBookings so the owner scope resolves.
func countBookings(filters []squirrel.Sqlizer) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("count(*)").
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
	for _, f := range filters {
		query = query.Where(f)
	}
	return query
}

func (r *pgxRepository) List(ctx context.Context, q Query) ([]*Booking, int, error) {
	filters, err := listFilters(q)
	if err != nil {
		return nil, 0, err
	}

	query := selectBookings().Column("count(*) OVER() AS total_count")
	for _, f := range filters {
		query = query.Where(f)
	}

	// end_time DESC is the only ordering clients rely on; id keeps pages stable.
	sql, args, err := query.
		OrderBy("b.end_time DESC", "b.id ASC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	// A page past the end carries no window count.
	if len(bookings) == 0 && q.Offset > 0 {
		sql, args, err := countBookings(filters).ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("build count bookings query failed: %w", err)
		}
		if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count bookings failed: %w", err)
		}
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID string) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		OrderBy("b.start_time ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID, "version": b.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.Version, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrConcurrentDecision
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) HasFinishedBooking(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"booker_id": bookerID, "item_id": itemID}).
		Where(squirrel.NotEq{"status": StatusRejected}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

// roleScope restricts a listing to the subject's side of the booking.
func roleScope(role Role, subjectID string) (squirrel.Sqlizer, error) {
	switch role {
	case RoleBooker:
		return squirrel.Eq{"b.booker_id": subjectID}, nil
	case RoleOwner:
		return squirrel.Eq{"i.owner_id": subjectID}, nil
	}
	return nil, fmt.Errorf("unknown booking role %d", role)
}

// statePredicate returns the filter for state at now, or nil for ALL.
func statePredicate(state State, now time.Time) (squirrel.Sqlizer, error) {
	switch state {
	case StateAll:
		return nil, nil
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}, nil
	case StatePast:
		return squirrel.Lt{"b.end_time": now}, nil
	case StateFuture:
		return squirrel.Gt{"b.start_time": now}, nil
	case StateWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}, nil
	case StateRejected:
		return squirrel.Eq{"b.status": StatusRejected}, nil
	}
	return nil, ErrUnsupportedState
}
