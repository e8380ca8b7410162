package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/internal/infra/cache/idempotency"
	eventRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/event"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
	"github.com/m04kA/GalliPark-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	spotRepo     SpotRepository
	eventRepo    EventRepository
	availability AvailabilityChecker
	calculator   PriceCalculator
	validator    TimeValidator
	userClient   UserServiceClient
	idempotency  IdempotencyStore
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger

	conflictRetries int
}

// Deps зависимости use case
type Deps struct {
	BookingRepo  BookingRepository
	SpotRepo     SpotRepository
	EventRepo    EventRepository
	Availability AvailabilityChecker
	Calculator   PriceCalculator
	Validator    TimeValidator
	UserClient   UserServiceClient
	Idempotency  IdempotencyStore
	TxManager    TransactionManager
	Metrics      Metrics
	Logger       Logger
}

// NewUseCase создает новый экземпляр use case
// conflictRetries сколько раз повторить весь сценарий после конфликта сериализации
func NewUseCase(deps Deps, conflictRetries int) *UseCase {
	if conflictRetries < 0 {
		conflictRetries = 0
	}
	store := deps.Idempotency
	if store == nil {
		store = idempotency.NoopStore{}
	}
	return &UseCase{
		bookingRepo:     deps.BookingRepo,
		spotRepo:        deps.SpotRepo,
		eventRepo:       deps.EventRepo,
		availability:    deps.Availability,
		calculator:      deps.Calculator,
		validator:       deps.Validator,
		userClient:      deps.UserClient,
		idempotency:     store,
		txManager:       deps.TxManager,
		metrics:         deps.Metrics,
		logger:          deps.Logger,
		conflictRetries: conflictRetries,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка вместимости и вставка выполняются в одной READ COMMITTED транзакции
// со строкой парковки, заблокированной через SELECT ... FOR UPDATE. Конкурентные
// создания на одну парковку выстраиваются в очередь на блокировке; запросы после
// неё читают свежий снимок и видят бронирования, зафиксированные за время ожидания.
// Если Postgres отменил транзакцию (дедлок 40P01 или 40001), сценарий повторяется
// conflictRetries раз, затем возвращается domain.ErrConcurrencyConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: driver=%d, spot=%d, vehicle=%s, start=%s, end=%s",
		req.DriverID, req.SpotID, req.VehicleType,
		req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingRejected(reasonInvalidInput)
		return nil, err
	}

	// 2. Только водитель может бронировать
	isDriver, err := uc.userClient.IsDriver(ctx, req.DriverID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check role of user=%d: %v", req.DriverID, err)
		uc.metrics.IncBookingRejected(reasonInternal)
		return nil, fmt.Errorf("%w: failed to check user role: %v", ErrInternal, err)
	}
	if !isDriver {
		uc.logger.Warn("CreateBooking: user=%d is not a driver", req.DriverID)
		uc.metrics.IncBookingRejected(reasonNotDriver)
		return nil, ErrNotDriver
	}

	// 3. Повтор по Idempotency-Key; reserved только если ключ занят этим запросом
	key := req.IdempotencyKey
	reserved := false
	if key != "" {
		replayed, ok, err := uc.replay(ctx, req.DriverID, key)
		if err != nil || replayed != nil {
			return replayed, err
		}
		reserved = ok
	}

	result, err := uc.create(ctx, req)
	if err != nil {
		if reserved {
			if relErr := uc.idempotency.Release(ctx, req.DriverID, key); relErr != nil {
				uc.logger.Error("CreateBooking: failed to release idempotency key: %v", relErr)
			}
		}
		return nil, err
	}

	if reserved {
		if err := uc.idempotency.Complete(ctx, req.DriverID, key, result.Booking.ID); err != nil {
			// бронирование уже создано, ошибка хранилища не должна его откатывать
			uc.logger.Error("CreateBooking: failed to store idempotency key for booking id=%d: %v", result.Booking.ID, err)
		}
	}

	return result, nil
}

// create проверяет время и выполняет транзакцию с повторами
func (uc *UseCase) create(ctx context.Context, req *Request) (*Response, error) {
	// 4. Проверка интервала (не требует БД)
	if verr := uc.validator.Check(req.StartTime, req.EndTime); verr != nil {
		uc.logger.Warn("CreateBooking: time rejected: %s", verr.Message)
		uc.metrics.IncBookingRejected(reasonTime)
		return nil, verr
	}

	var (
		result *Response
		err    error
	)
	for attempt := 0; attempt <= uc.conflictRetries; attempt++ {
		result, err = uc.createInTx(ctx, req)
		if err == nil || !txmanager.IsSerializationFailure(err) {
			break
		}
		uc.metrics.IncBookingConflict()
		uc.logger.Warn("CreateBooking: serialization conflict on spot=%d, attempt %d/%d",
			req.SpotID, attempt+1, uc.conflictRetries+1)
	}

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.metrics.IncBookingRejected(reasonConflict)
			return nil, fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
		uc.metrics.IncBookingRejected(rejectReason(err))
		return nil, err
	}

	uc.metrics.IncBookingCreated(string(result.Booking.VehicleType))
	if result.Pricing.SurchargeApplied {
		uc.metrics.IncEventSurcharge()
	}
	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s",
		result.Booking.ID, result.Booking.TotalPrice.StringFixed(domain.CurrencyPlaces))

	return result, nil
}

// createInTx одна попытка: блокировка парковки, проверка вместимости, расчёт цены, вставка
func (uc *UseCase) createInTx(ctx context.Context, req *Request) (*Response, error) {
	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем строку парковки до конца транзакции
		spot, err := uc.spotRepo.GetByIDForUpdate(txCtx, req.SpotID)
		if err != nil {
			if errors.Is(err, spotRepo.ErrSpotNotFound) {
				uc.logger.Warn("CreateBooking: spot id=%d not found", req.SpotID)
				return ErrSpotNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock spot id=%d: %v", req.SpotID, err)
			return fmt.Errorf("%w: failed to lock spot: %w", ErrInternal, err)
		}

		if !spot.IsActive {
			uc.logger.Warn("CreateBooking: spot id=%d is not active", req.SpotID)
			return domain.NewValidationError(domain.FieldSpot, "parking spot is not accepting bookings")
		}

		// 5.2. Явно указанное событие должно относиться к этой парковке
		if req.UtsavEventID != nil {
			event, err := uc.eventRepo.GetByID(txCtx, *req.UtsavEventID)
			if err != nil {
				if errors.Is(err, eventRepo.ErrEventNotFound) {
					uc.logger.Warn("CreateBooking: event id=%d not found", *req.UtsavEventID)
					return ErrEventNotFound
				}
				uc.logger.Error("CreateBooking: failed to get event id=%d: %v", *req.UtsavEventID, err)
				return fmt.Errorf("%w: failed to get event: %w", ErrInternal, err)
			}
			if verr := event.CheckLinkTo(spot.ID); verr != nil {
				uc.logger.Warn("CreateBooking: event id=%d rejected for spot id=%d: %s", event.ID, spot.ID, verr.Message)
				return verr
			}
		}

		// 5.3. Проверка вместимости
		availability, err := uc.availability.CheckAvailability(txCtx, spot, req.StartTime, req.EndTime, req.VehicleType, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if !availability.Allowed {
			uc.logger.Warn("CreateBooking: spot=%d full for %s, %d/%d taken",
				spot.ID, req.VehicleType, availability.Overlapping, availability.Capacity)
			return domain.NewCapacityExceededError(availability.Reason)
		}

		// 5.4. Цена считается только на сервере; без цены бронирование не создаётся
		pricing, err := uc.calculator.CalculateForSpot(txCtx, spot, domain.BookingDraft{
			SpotID:       spot.ID,
			UtsavEventID: req.UtsavEventID,
			VehicleType:  req.VehicleType,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTimeRange) {
				return err
			}
			uc.logger.Error("CreateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: pricing: %w", ErrInternal, err)
		}

		// 5.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			DriverID:     req.DriverID,
			SpotID:       spot.ID,
			UtsavEventID: req.UtsavEventID,
			VehicleType:  req.VehicleType,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			TotalPrice:   pricing.TotalPrice,
			Status:       domain.StatusPending,
			Notes:        req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = &Response{Booking: created, Pricing: pricing}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// replay возвращает ранее созданное бронирование; при новом ключе (nil, true, nil).
// При ошибке хранилища ключ может принадлежать другому запросу: (nil, false, nil),
// и этот запрос не трогает ключ ни при успехе, ни при неудаче
func (uc *UseCase) replay(ctx context.Context, driverID int64, key string) (*Response, bool, error) {
	bookingID, err := uc.idempotency.Reserve(ctx, driverID, key)
	if err != nil {
		if errors.Is(err, idempotency.ErrRequestInProgress) {
			uc.logger.Warn("CreateBooking: idempotency key in progress for driver=%d", driverID)
			return nil, false, ErrRequestInProgress
		}
		// без Redis продолжаем без защиты от повторов
		uc.logger.Error("CreateBooking: idempotency store unavailable: %v", err)
		return nil, false, nil
	}
	if bookingID == 0 {
		return nil, true, nil
	}

	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load replayed booking id=%d: %v", bookingID, err)
		return nil, false, fmt.Errorf("%w: failed to load replayed booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: replayed booking id=%d for driver=%d", bookingID, driverID)
	return &Response{Booking: booking, Replayed: true}, false, nil
}

func rejectReason(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return reasonCapacity
	case errors.Is(err, ErrSpotNotFound):
		return reasonSpot
	case errors.Is(err, ErrEventNotFound):
		return reasonEvent
	case errors.As(err, &verr):
		return verr.Field
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return reasonTime
	default:
		return reasonInternal
	}
}
