package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"gopkg.in/guregu/null.v4"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GalliPark-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"driver_id",
	"spot_id",
	"utsav_event_id",
	"vehicle_type",
	"start_time",
	"end_time",
	"total_price",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Вызывается только из сериализуемой транзакции create_booking после проверки вместимости
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"driver_id",
			"spot_id",
			"utsav_event_id",
			"vehicle_type",
			"start_time",
			"end_time",
			"total_price",
			"status",
			"notes",
		).
		Values(
			booking.DriverID,
			booking.SpotID,
			null.IntFromPtr(booking.UtsavEventID),
			booking.VehicleType,
			booking.StartTime,
			booking.EndTime,
			booking.TotalPrice,
			booking.Status,
			null.StringFromPtr(booking.Notes),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		// %w дважды: txmanager должен увидеть *pq.Error с кодом 40001
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByDriver получает историю бронирований водителя, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) GetByDriver(ctx context.Context, filter domain.DriverBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"driver_id": filter.DriverID}).
		OrderBy("start_time DESC", "id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDriver - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDriver - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetBySpotWithFilter получает бронирования парковки с фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (From, To): бронирования, пересекающие [From, To)
// - Статусу (Status)
// - Включению завершённых и отменённых (IncludeInactive)
//
// Примеры использования:
//
//  1. Все текущие бронирования парковки:
//     filter := domain.SpotBookingsFilter{SpotID: 7}
//
//  2. Бронирования на день:
//     from := time.Date(2026, 8, 20, 0, 0, 0, 0, loc)
//     to := from.AddDate(0, 0, 1)
//     filter := domain.SpotBookingsFilter{SpotID: 7, From: &from, To: &to}
//
//  3. История, включая отменённые:
//     filter := domain.SpotBookingsFilter{SpotID: 7, IncludeInactive: true}
func (r *Repository) GetBySpotWithFilter(ctx context.Context, filter domain.SpotBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"spot_id": filter.SpotID})

	// Пересечение с периодом (строгие неравенства, касание границ не считается)
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpotWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpotWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountOverlapping считает бронирования парковки того же типа транспорта в статусах pending/active,
// пересекающие интервал [start, end): start_time < end AND end_time > start.
// excludeID исключает редактируемое бронирование
func (r *Repository) CountOverlapping(
	ctx context.Context,
	spotID int64,
	vehicleType domain.VehicleType,
	start, end time.Time,
	excludeID *int64,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"spot_id":      spotID,
			"vehicle_type": vehicleType,
			"status":       statusStrings(domain.CapacityStatuses),
		}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// TransitionStatus переводит бронирование в статус target, только если текущий статус входит в from.
// UPDATE ... WHERE id = ? AND status IN (...) RETURNING: при гонке двух запросов выигрывает один.
// Если ни одна строка не обновлена, возвращает ErrStatusMismatch (или ErrBookingNotFound)
func (r *Repository) TransitionStatus(
	ctx context.Context,
	id int64,
	from []domain.BookingStatus,
	target domain.BookingStatus,
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", target).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(from)}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Отличаем "нет такого бронирования" от "не тот статус"
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, ErrStatusMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var eventID null.Int
	var notes null.String
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.DriverID,
		&booking.SpotID,
		&eventID,
		&booking.VehicleType,
		&booking.StartTime,
		&booking.EndTime,
		&booking.TotalPrice,
		&booking.Status,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.UtsavEventID = eventID.Ptr()
	booking.Notes = notes.Ptr()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
