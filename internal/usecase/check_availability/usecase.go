package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
)

// UseCase use case предварительной проверки доступности парковки
// Читает без блокировок: результат может устареть к моменту создания бронирования
type UseCase struct {
	spotRepo     SpotRepository
	availability AvailabilityChecker
	validator    TimeValidator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	spotRepo SpotRepository,
	availability AvailabilityChecker,
	validator TimeValidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		spotRepo:     spotRepo,
		availability: availability,
		validator:    validator,
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: user=%d, spot=%d, vehicle=%s, start=%s, end=%s",
		req.UserID, req.SpotID, req.VehicleType,
		req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем парковку
	spot, err := uc.spotRepo.GetByID(ctx, req.SpotID)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			uc.logger.Warn("CheckAvailability: spot id=%d not found", req.SpotID)
			return nil, ErrSpotNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get spot id=%d: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: failed to get spot: %v", ErrInternal, err)
	}

	resp := &Response{
		SpotID:      spot.ID,
		VehicleType: req.VehicleType,
	}

	// 3. Некорректный интервал не ошибка запроса, а отрицательный ответ с причиной
	if ok, reason := uc.validator.Validate(req.StartTime, req.EndTime); !ok {
		resp.Message = reason
		uc.logger.Info("CheckAvailability: spot=%d interval rejected: %s", spot.ID, reason)
		return resp, nil
	}

	if !spot.IsActive {
		resp.Message = "parking spot is not accepting bookings"
		return resp, nil
	}

	// 4. Подсчёт занятых мест
	result, err := uc.availability.CheckAvailability(ctx, spot, req.StartTime, req.EndTime, req.VehicleType, nil)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed for spot id=%d: %v", spot.ID, err)
		return nil, fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}

	resp.IsAvailable = result.Allowed
	resp.Message = result.Reason
	resp.Overlapping = result.Overlapping
	resp.Capacity = result.Capacity
	resp.AvailableCapacity = result.AvailableCapacity()
	resp.OccupancyRate = result.OccupancyRate()

	uc.logger.Info("CheckAvailability: spot=%d available=%t, %d/%d taken",
		spot.ID, resp.IsAvailable, resp.Overlapping, resp.Capacity)
	return resp, nil
}
