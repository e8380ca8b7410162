package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/booking"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

const (
	transitionOK       = "ok"
	transitionNoop     = "noop"
	transitionRejected = "rejected"
)

// Service сервис для работы с бронированиями: чтение и переходы статусов
type Service struct {
	bookingRepo BookingRepository
	spotRepo    SpotRepository
	calculator  PriceCalculator
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	spotRepo SpotRepository,
	calculator PriceCalculator,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		spotRepo:    spotRepo,
		calculator:  calculator,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видно водителю бронирования и владельцу парковки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, _, err := s.loadWithAccess(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetDriverBookings получает историю бронирований водителя
// Опционально фильтрует по статусу; водитель видит только свою историю
func (s *Service) GetDriverBookings(ctx context.Context, req *models.GetDriverBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDriverBookings: fetching bookings for driver=%d, status=%v", req.DriverID, req.Status)

	if req.RequesterID != req.DriverID {
		s.logger.Warn("GetDriverBookings: user=%d requested history of driver=%d", req.RequesterID, req.DriverID)
		return nil, ErrAccessDenied
	}

	filter := domain.DriverBookingsFilter{DriverID: req.DriverID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetDriverBookings: invalid status=%s for driver=%d", *req.Status, req.DriverID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByDriver(ctx, filter)
	if err != nil {
		s.logger.Error("GetDriverBookings: repository error for driver=%d: %v", req.DriverID, err)
		return nil, fmt.Errorf("%w: GetDriverBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDriverBookings: successfully fetched %d bookings for driver=%d", len(bookings), req.DriverID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSpotBookings получает бронирования парковки с фильтрацией
// Доступно только владельцу парковки
func (s *Service) GetSpotBookings(ctx context.Context, req *models.GetSpotBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSpotBookings: fetching bookings for spot=%d, user=%d, includeInactive=%t",
		req.SpotID, req.UserID, req.IncludeInactive)

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: period end must be after start", ErrInvalidInput)
	}

	spot, err := s.getSpot(ctx, "GetSpotBookings", req.SpotID)
	if err != nil {
		return nil, err
	}
	if !spot.IsOwnedBy(req.UserID) {
		s.logger.Warn("GetSpotBookings: user=%d is not the owner of spot=%d", req.UserID, req.SpotID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSpotBookings: invalid filter for spot=%d: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySpotWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSpotBookings: repository error for spot=%d: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: GetSpotBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpotBookings: successfully fetched %d bookings for spot=%d", len(bookings), req.SpotID)
	return models.FromDomainBookingList(bookings), nil
}

// Activate pending -> active
func (s *Service) Activate(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, userID, domain.StatusActive)
}

// Complete active -> completed
func (s *Service) Complete(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, userID, domain.StatusCompleted)
}

// Cancel pending|active -> cancelled
// Повторная отмена уже отменённого бронирования успешна и ничего не меняет
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, userID, domain.StatusCancelled)
}

// PricingBreakdown пересчитывает цену бронирования для показа клиенту
// Сохранённая total_price не изменяется
func (s *Service) PricingBreakdown(ctx context.Context, bookingID, userID int64) (*models.PricingBreakdownResponse, error) {
	s.logger.Info("PricingBreakdown: booking id=%d, user=%d", bookingID, userID)

	booking, spot, err := s.loadWithAccess(ctx, "PricingBreakdown", bookingID, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.calculator.CalculateForSpot(ctx, spot, domain.BookingDraft{
		SpotID:       booking.SpotID,
		UtsavEventID: booking.UtsavEventID,
		VehicleType:  booking.VehicleType,
		StartTime:    booking.StartTime,
		EndTime:      booking.EndTime,
	})
	if err != nil {
		s.logger.Error("PricingBreakdown: failed to price booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: PricingBreakdown - calculate: %w", ErrInternal, err)
	}

	return models.FromPricingResult(booking, result), nil
}

// transition выполняет CAS перехода статуса
// Если конкурентный запрос успел изменить статус, возвращает *domain.TransitionError с актуальным статусом
func (s *Service) transition(ctx context.Context, bookingID, userID int64, target domain.BookingStatus) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d -> %s by user=%d", bookingID, target, userID)

	booking, _, err := s.loadWithAccess(ctx, "Transition", bookingID, userID)
	if err != nil {
		return nil, err
	}

	if target == domain.StatusCancelled && booking.IsCancelled() {
		s.logger.Info("Transition: booking id=%d already cancelled", bookingID)
		s.metrics.IncBookingTransition(string(target), transitionNoop)
		return models.FromDomainBooking(booking), nil
	}

	if !booking.CanTransitionTo(target) {
		s.logger.Warn("Transition: booking id=%d cannot move %s -> %s", bookingID, booking.Status, target)
		s.metrics.IncBookingTransition(string(target), transitionRejected)
		return nil, &domain.TransitionError{Current: booking.Status, Target: target}
	}

	updated, err := s.bookingRepo.TransitionStatus(ctx, bookingID, domain.TransitionSources(target), target)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusMismatch):
			return s.resolveLostRace(ctx, bookingID, target)
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Transition: booking id=%d disappeared", bookingID)
			return nil, ErrBookingNotFound
		default:
			s.logger.Error("Transition: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}
	}

	s.metrics.IncBookingTransition(string(target), transitionOK)
	s.logger.Info("Transition: booking id=%d is now %s", bookingID, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// resolveLostRace перечитывает бронирование после неудачного CAS
func (s *Service) resolveLostRace(ctx context.Context, bookingID int64, target domain.BookingStatus) (*models.BookingResponse, error) {
	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Transition: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Transition - reload: %v", ErrInternal, err)
	}

	if target == domain.StatusCancelled && current.IsCancelled() {
		s.metrics.IncBookingTransition(string(target), transitionNoop)
		return models.FromDomainBooking(current), nil
	}

	s.logger.Warn("Transition: booking id=%d changed concurrently, now %s", bookingID, current.Status)
	s.metrics.IncBookingTransition(string(target), transitionRejected)
	return nil, &domain.TransitionError{Current: current.Status, Target: target}
}

// Вспомогательные методы

// loadWithAccess загружает бронирование и его парковку и проверяет права пользователя
func (s *Service) loadWithAccess(ctx context.Context, op string, bookingID, userID int64) (*domain.Booking, *domain.ParkingSpot, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	spot, err := s.getSpot(ctx, op, booking.SpotID)
	if err != nil {
		return nil, nil, err
	}

	if booking.DriverID != userID && !spot.IsOwnedBy(userID) {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, bookingID)
		return nil, nil, ErrAccessDenied
	}

	return booking, spot, nil
}

func (s *Service) getSpot(ctx context.Context, op string, spotID int64) (*domain.ParkingSpot, error) {
	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("%s: spot id=%d not found", op, spotID)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("%s: failed to get spot id=%d: %v", op, spotID, err)
		return nil, fmt.Errorf("%w: %s - get spot: %v", ErrInternal, op, err)
	}
	return spot, nil
}
