package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GalliPark-BookingService/pkg/psqlbuilder"
)

var eventColumns = []string{
	"id",
	"spot_id",
	"name",
	"description",
	"event_date",
	"start_time",
	"end_time",
	"temporary_capacity_two_wheeler",
	"temporary_capacity_four_wheeler",
	"temporary_price_two_wheeler",
	"temporary_price_four_wheeler",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий праздничных событий (utsav) парковок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.UtsavEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("utsav_events").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	event, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %w", ErrScanRow, err)
	}

	return event, nil
}

// ListActiveForSpotOnDate возвращает активные события парковки на календарную дату date.
// Порядок стабильный (id ASC): при нескольких пересекающихся событиях выигрывает первое
func (r *Repository) ListActiveForSpotOnDate(ctx context.Context, spotID int64, date time.Time) ([]*domain.UtsavEvent, error) {
	return r.list(ctx, "ListActiveForSpotOnDate",
		squirrel.Eq{
			"spot_id":    spotID,
			"is_active":  true,
			"event_date": date.Format(domain.DateFormat),
		},
		"id ASC",
	)
}

// ListActiveBySpot возвращает активные события парковки, отсортированные по дате
func (r *Repository) ListActiveBySpot(ctx context.Context, spotID int64) ([]*domain.UtsavEvent, error) {
	return r.list(ctx, "ListActiveBySpot",
		squirrel.Eq{
			"spot_id":   spotID,
			"is_active": true,
		},
		"event_date ASC", "start_time ASC", "id ASC",
	)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq, orderBy ...string) ([]*domain.UtsavEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("utsav_events").
		Where(where).
		OrderBy(orderBy...).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	events := make([]*domain.UtsavEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return events, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.UtsavEvent, error) {
	var event domain.UtsavEvent
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&event.ID,
		&event.SpotID,
		&event.Name,
		&description,
		&event.EventDate,
		&event.StartTime,
		&event.EndTime,
		&event.TemporaryCapacityTwoWheeler,
		&event.TemporaryCapacityFourWheeler,
		&event.TemporaryPriceTwoWheeler,
		&event.TemporaryPriceFourWheeler,
		&event.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Description = description.String
	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return &event, nil
}
