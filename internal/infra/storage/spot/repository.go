package spot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GalliPark-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий парковочных мест (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает парковку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSpot, error) {
	return r.get(ctx, "GetByID", id, false)
}

// GetByIDForUpdate получает парковку и блокирует её строку до конца транзакции (SELECT ... FOR UPDATE).
// Все создания бронирований на одну парковку выстраиваются в очередь на этой блокировке.
// Вне транзакции блокировка не берётся
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSpot, error) {
	return r.get(ctx, "GetByIDForUpdate", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, op string, id int64, forUpdate bool) (*domain.ParkingSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"owner_id",
		"latitude",
		"longitude",
		"address",
		"city",
		"description",
		"capacity_two_wheeler",
		"capacity_four_wheeler",
		"price_per_hour_two_wheeler",
		"price_per_hour_four_wheeler",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("parking_spots").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var spot domain.ParkingSpot
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&spot.ID,
		&spot.OwnerID,
		&spot.Latitude,
		&spot.Longitude,
		&spot.Address,
		&spot.City,
		&description,
		&spot.CapacityTwoWheeler,
		&spot.CapacityFourWheeler,
		&spot.PricePerHourTwoWheeler,
		&spot.PricePerHourFourWheeler,
		&spot.IsActive,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan spot: %w", ErrScanRow, op, err)
	}

	spot.Description = description.String
	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return &spot, nil
}
