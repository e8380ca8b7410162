package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/event"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
	"github.com/m04kA/GalliPark-BookingService/internal/service/availability"
	"github.com/m04kA/GalliPark-BookingService/internal/service/pricing"
	"github.com/m04kA/GalliPark-BookingService/internal/service/validation"
	"github.com/m04kA/GalliPark-BookingService/pkg/ptr"
	"github.com/m04kA/GalliPark-BookingService/pkg/txmanager"
)

var npt = time.FixedZone("NPT", 5*3600+45*60)

const (
	driverID  = int64(11)
	ownerID   = int64(100)
	spotID    = int64(7)
	eventID   = int64(3)
	otherSpot = int64(8)
)

// memDB общее состояние in-memory репозиториев; bookings содержит только зафиксированные строки
type memDB struct {
	mu        sync.Mutex
	spots     map[int64]*domain.ParkingSpot
	events    map[int64]*domain.UtsavEvent
	bookings  []*domain.Booking
	nextID    int64
	spotLocks map[int64]*sync.Mutex
}

// spotLock блокировка строки парковки (аналог SELECT ... FOR UPDATE)
func (db *memDB) spotLock(id int64) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.spotLocks[id]
	if !ok {
		l = &sync.Mutex{}
		db.spotLocks[id] = l
	}
	return l
}

// memTx незафиксированные вставки и удерживаемые блокировки транзакции
type memTx struct {
	pending []*domain.Booking
	locks   []*sync.Mutex
}

type memTxKey struct{}

func txFrom(ctx context.Context) *memTx {
	tx, _ := ctx.Value(memTxKey{}).(*memTx)
	return tx
}

func newMemDB() *memDB {
	return &memDB{
		spotLocks: make(map[int64]*sync.Mutex),
		spots: map[int64]*domain.ParkingSpot{
			spotID: {
				ID:                      spotID,
				OwnerID:                 ownerID,
				CapacityTwoWheeler:      5,
				CapacityFourWheeler:     1,
				PricePerHourTwoWheeler:  decimal.NewFromInt(50),
				PricePerHourFourWheeler: decimal.NewFromInt(120),
				IsActive:                true,
			},
			otherSpot: {ID: otherSpot, OwnerID: ownerID, CapacityTwoWheeler: 1, IsActive: false},
		},
		events: map[int64]*domain.UtsavEvent{
			eventID: {
				ID:                       eventID,
				SpotID:                   spotID,
				Name:                     "Indra Jatra",
				EventDate:                time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
				StartTime:                "12:00",
				EndTime:                  "20:00",
				TemporaryPriceTwoWheeler: decimal.NewFromInt(60),
				IsActive:                 true,
			},
		},
	}
}

type memSpots struct{ db *memDB }

func (r memSpots) GetByID(_ context.Context, id int64) (*domain.ParkingSpot, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.spots[id]
	if !ok {
		return nil, spotRepo.ErrSpotNotFound
	}
	return s, nil
}

func (r memSpots) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSpot, error) {
	if tx := txFrom(ctx); tx != nil {
		l := r.db.spotLock(id)
		l.Lock()
		tx.locks = append(tx.locks, l)
	}
	return r.GetByID(ctx, id)
}

type memEvents struct{ db *memDB }

func (r memEvents) GetByID(_ context.Context, id int64) (*domain.UtsavEvent, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	return e, nil
}

func (r memEvents) ListActiveForSpotOnDate(_ context.Context, spot int64, date time.Time) ([]*domain.UtsavEvent, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*domain.UtsavEvent
	for _, e := range r.db.events {
		if e.SpotID == spot && e.IsActive && e.EventDate.Format(domain.DateFormat) == date.Format(domain.DateFormat) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memBookings struct {
	db        *memDB
	createErr error
}

func (r *memBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextID++
	b.ID = r.db.nextID
	if tx := txFrom(ctx); tx != nil {
		tx.pending = append(tx.pending, b)
		return b, nil
	}
	r.db.bookings = append(r.db.bookings, b)
	return b, nil
}

func (r *memBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, b := range r.db.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

// CountOverlapping читает зафиксированные строки на момент вызова и свои вставки (READ COMMITTED)
func (r *memBookings) CountOverlapping(ctx context.Context, spot int64, vt domain.VehicleType, start, end time.Time, excludeID *int64) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	visible := r.db.bookings
	if tx := txFrom(ctx); tx != nil {
		visible = append(append([]*domain.Booking{}, visible...), tx.pending...)
	}
	count := 0
	for _, b := range visible {
		if b.SpotID == spot && b.VehicleType == vt && b.HoldsCapacity() &&
			(excludeID == nil || *excludeID != b.ID) &&
			b.StartTime.Before(end) && b.EndTime.After(start) {
			count++
		}
	}
	return count, nil
}

// memTxManager транзакция без блокировки на старте: парковка блокируется в GetByIDForUpdate,
// вставки становятся видны другим при фиксации, блокировки снимаются после неё
type memTxManager struct {
	db       *memDB
	mu       sync.Mutex
	failures int
	calls    int
}

func (m *memTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	fail := m.failures > 0
	if fail {
		m.failures--
	}
	m.mu.Unlock()
	if fail {
		return fmt.Errorf("%w: deadlock detected", txmanager.ErrSerializationFailure)
	}

	tx := &memTx{}
	err := fn(context.WithValue(ctx, memTxKey{}, tx))
	if err == nil {
		m.db.mu.Lock()
		m.db.bookings = append(m.db.bookings, tx.pending...)
		m.db.mu.Unlock()
	}
	for _, l := range tx.locks {
		l.Unlock()
	}
	return err
}

type fakeUsers map[int64]bool

func (u fakeUsers) IsDriver(_ context.Context, id int64) (bool, error) {
	return u[id], nil
}

type memIdempotency struct {
	mu         sync.Mutex
	keys       map[string]int64
	reserveErr error
}

func (s *memIdempotency) Reserve(_ context.Context, driver int64, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return 0, s.reserveErr
	}
	k := fmt.Sprintf("%d:%s", driver, key)
	id, ok := s.keys[k]
	if !ok {
		s.keys[k] = 0
		return 0, nil
	}
	if id == 0 {
		return 0, idempotency.ErrRequestInProgress
	}
	return id, nil
}

func (s *memIdempotency) Complete(_ context.Context, driver int64, key string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[fmt.Sprintf("%d:%s", driver, key)] = id
	return nil
}

func (s *memIdempotency) Release(_ context.Context, driver int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, fmt.Sprintf("%d:%s", driver, key))
	return nil
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	rejected  map[string]int
	conflicts int
	surcharge int
}

func (m *countingMetrics) IncBookingCreated(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) IncBookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejected == nil {
		m.rejected = make(map[string]int)
	}
	m.rejected[reason]++
}

func (m *countingMetrics) IncBookingConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func (m *countingMetrics) IncEventSurcharge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surcharge++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	db       *memDB
	bookings *memBookings
	tx       *memTxManager
	keys     *memIdempotency
	metrics  *countingMetrics
	uc       *UseCase
}

func newFixture(retries int) *fixture {
	db := newMemDB()
	f := &fixture{
		db:       db,
		bookings: &memBookings{db: db},
		tx:       &memTxManager{db: db},
		keys:     &memIdempotency{keys: make(map[string]int64)},
		metrics:  &countingMetrics{},
	}
	spots := memSpots{db: db}
	events := memEvents{db: db}

	f.uc = NewUseCase(Deps{
		BookingRepo:  f.bookings,
		SpotRepo:     spots,
		EventRepo:    events,
		Availability: availability.NewChecker(f.bookings, nopLogger{}),
		Calculator:   pricing.NewCalculator(spots, events, npt, nopLogger{}),
		Validator:    validation.NewValidator(fixedClock{now: at(8, 0)}, time.Hour),
		UserClient:   fakeUsers{driverID: true, ownerID: false},
		Idempotency:  f.keys,
		TxManager:    f.tx,
		Metrics:      f.metrics,
		Logger:       nopLogger{},
	}, retries)
	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 20, hour, minute, 0, 0, npt)
}

func request(start, end time.Time) *Request {
	return &Request{
		DriverID:    driverID,
		SpotID:      spotID,
		VehicleType: domain.VehicleTwoWheeler,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestExecute_CreatesPendingBookingWithServerPrice(t *testing.T) {
	f := newFixture(1)

	resp, err := f.uc.Execute(context.Background(), request(at(9, 0), at(12, 0)))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, "150.00", resp.Booking.TotalPrice.StringFixed(2))
	assert.False(t, resp.Pricing.SurchargeApplied)
	assert.False(t, resp.Replayed)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_LinkedEventInsideWindow(t *testing.T) {
	f := newFixture(1)
	req := request(at(13, 0), at(16, 0))
	req.UtsavEventID = ptr.Ptr(eventID)

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "216.00", resp.Booking.TotalPrice.StringFixed(2))
	assert.Equal(t, "36.00", resp.Pricing.EventSurcharge.StringFixed(2))
	assert.Equal(t, 1, f.metrics.surcharge)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"end before start", func(r *Request) { r.EndTime = r.StartTime.Add(-time.Hour) }, domain.ErrInvalidTimeRange},
		{"start in the past", func(r *Request) { r.StartTime = at(7, 0) }, domain.ErrValidation},
		{"too short", func(r *Request) { r.EndTime = r.StartTime.Add(30 * time.Minute) }, domain.ErrValidation},
		{"unknown vehicle", func(r *Request) { r.VehicleType = "bus" }, ErrInvalidInput},
		{"not a driver", func(r *Request) { r.DriverID = ownerID }, ErrNotDriver},
		{"unknown spot", func(r *Request) { r.SpotID = 404 }, ErrSpotNotFound},
		{"inactive spot", func(r *Request) { r.SpotID = otherSpot }, domain.ErrValidation},
		{"unknown event", func(r *Request) { r.UtsavEventID = ptr.Ptr(int64(99)) }, ErrEventNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(1)
			req := request(at(13, 0), at(16, 0))
			tt.mutate(req)

			resp, err := f.uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, errors.Is(err, domain.ErrCapacityExceeded))
			assert.Empty(t, f.db.bookings)
		})
	}
}

func TestExecute_EventOfAnotherSpot(t *testing.T) {
	f := newFixture(1)
	f.db.events[eventID].SpotID = otherSpot
	req := request(at(13, 0), at(16, 0))
	req.UtsavEventID = ptr.Ptr(eventID)

	_, err := f.uc.Execute(context.Background(), req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.FieldEvent, verr.Field)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	f := newFixture(1)
	for i := 0; i < 5; i++ {
		_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(16, 0)))
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), request(at(14, 0), at(15, 0)))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, errors.Is(err, domain.ErrConcurrencyConflict))
	assert.Contains(t, err.Error(), "No available two-wheeler spots for the requested time period")
	assert.Equal(t, 1, f.metrics.rejected[reasonCapacity])

	// касающийся интервал не пересекается
	_, err = f.uc.Execute(context.Background(), request(at(16, 0), at(17, 0)))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentRequestsNeverOversell(t *testing.T) {
	const n = 25
	f := newFixture(1)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(16, 0)))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	accepted, rejected := 0, 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		rejected++
	}

	assert.Equal(t, 5, accepted)
	assert.Equal(t, n-5, rejected)
	assert.Len(t, f.db.bookings, 5)
	assert.Zero(t, f.metrics.conflicts)
}

func TestExecute_QueuedRequestSeesBookingCommittedWhileWaiting(t *testing.T) {
	f := newFixture(0)
	for i := 0; i < 4; i++ {
		_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(16, 0)))
		require.NoError(t, err)
	}

	// конкурентная транзакция держит парковку и фиксирует пятое бронирование
	lock := f.db.spotLock(spotID)
	lock.Lock()
	done := make(chan error, 1)
	go func() {
		_, err := f.uc.Execute(context.Background(), request(at(14, 0), at(15, 0)))
		done <- err
	}()

	f.db.mu.Lock()
	f.db.nextID++
	f.db.bookings = append(f.db.bookings, &domain.Booking{
		ID:          f.db.nextID,
		DriverID:    driverID,
		SpotID:      spotID,
		VehicleType: domain.VehicleTwoWheeler,
		StartTime:   at(13, 30),
		EndTime:     at(15, 30),
		Status:      domain.StatusPending,
	})
	f.db.mu.Unlock()
	lock.Unlock()

	err := <-done
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Zero(t, f.metrics.conflicts)
	assert.Len(t, f.db.bookings, 5)
}

func TestExecute_RetriesSerializationFailure(t *testing.T) {
	f := newFixture(1)
	f.tx.failures = 1

	resp, err := f.uc.Execute(context.Background(), request(at(13, 0), at(16, 0)))

	require.NoError(t, err)
	assert.NotZero(t, resp.Booking.ID)
	assert.Equal(t, 2, f.tx.calls)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_ConflictAfterRetriesIsRetryableError(t *testing.T) {
	f := newFixture(1)
	f.tx.failures = 2

	_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(16, 0)))

	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.False(t, errors.Is(err, domain.ErrCapacityExceeded))
	assert.Equal(t, 2, f.tx.calls)
	assert.Empty(t, f.db.bookings)
}

func TestExecute_InsertFailureBlocksBooking(t *testing.T) {
	f := newFixture(0)
	f.bookings.createErr = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), request(at(13, 0), at(16, 0)))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.metrics.rejected[reasonInternal])
}

func TestExecute_IdempotentReplay(t *testing.T) {
	f := newFixture(1)
	req := request(at(13, 0), at(16, 0))
	req.IdempotencyKey = "b7f1c2"

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Len(t, f.db.bookings, 1)
}

func TestExecute_IdempotencyKeyReleasedOnFailure(t *testing.T) {
	f := newFixture(1)
	req := request(at(13, 0), at(16, 0))
	req.IdempotencyKey = "retry-me"
	req.SpotID = 404

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSpotNotFound)

	req.SpotID = spotID
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Replayed)
}

func TestExecute_IdempotencyKeyInProgress(t *testing.T) {
	f := newFixture(1)
	f.keys.keys[fmt.Sprintf("%d:%s", driverID, "busy")] = 0
	req := request(at(13, 0), at(16, 0))
	req.IdempotencyKey = "busy"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrRequestInProgress)
	assert.Empty(t, f.db.bookings)
}

func TestExecute_StoreFailureLeavesForeignKeyAlone(t *testing.T) {
	k := fmt.Sprintf("%d:%s", driverID, "shared")

	t.Run("failed create does not release", func(t *testing.T) {
		f := newFixture(1)
		f.keys.keys[k] = 0
		f.keys.reserveErr = fmt.Errorf("%w: Reserve - get: i/o timeout", idempotency.ErrStore)
		req := request(at(13, 0), at(16, 0))
		req.IdempotencyKey = "shared"
		req.SpotID = 404

		_, err := f.uc.Execute(context.Background(), req)

		require.ErrorIs(t, err, ErrSpotNotFound)
		id, ok := f.keys.keys[k]
		assert.True(t, ok)
		assert.Zero(t, id)
	})

	t.Run("successful create does not overwrite", func(t *testing.T) {
		f := newFixture(1)
		f.keys.keys[k] = 0
		f.keys.reserveErr = fmt.Errorf("%w: Reserve - get: i/o timeout", idempotency.ErrStore)
		req := request(at(13, 0), at(16, 0))
		req.IdempotencyKey = "shared"

		resp, err := f.uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, resp.Replayed)
		assert.Zero(t, f.keys.keys[k])
	})
}
