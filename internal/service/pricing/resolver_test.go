package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

func TestFindOverlappingEvent_FirstMatchWins(t *testing.T) {
	first := dashainEvent(3)
	second := dashainEvent(5)
	second.StartTime = "10:00"

	events := &mockEventRepo{}
	events.On("ListActiveForSpotOnDate", mock.Anything, int64(7), onDate("2026-08-20")).
		Return([]*domain.UtsavEvent{first, second}, nil)

	calc := NewCalculator(&mockSpotRepo{}, events, npt, nopLogger{})
	found, err := calc.FindOverlappingEvent(context.Background(), 7, at(20, 13, 0), at(20, 14, 0))

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(3), found.ID)
}

func TestFindOverlappingEvent_DateKeyedOnStart(t *testing.T) {
	events := &mockEventRepo{}
	events.On("ListActiveForSpotOnDate", mock.Anything, int64(7), onDate("2026-08-19")).
		Return([]*domain.UtsavEvent{}, nil)

	calc := NewCalculator(&mockSpotRepo{}, events, npt, nopLogger{})

	// начинается накануне и заходит в окно события, но дата начала другая
	found, err := calc.FindOverlappingEvent(context.Background(), 7, at(19, 23, 0), at(20, 13, 0))

	require.NoError(t, err)
	assert.Nil(t, found)
	events.AssertExpectations(t)
}

func TestFindOverlappingEvent_DateUsesServiceTimezone(t *testing.T) {
	events := &mockEventRepo{}
	events.On("ListActiveForSpotOnDate", mock.Anything, int64(7), onDate("2026-08-20")).
		Return([]*domain.UtsavEvent{dashainEvent(1)}, nil)

	calc := NewCalculator(&mockSpotRepo{}, events, npt, nopLogger{})

	// 2026-08-20 07:00 UTC = 12:45 NPT
	start := time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC)
	found, err := calc.FindOverlappingEvent(context.Background(), 7, start, start.Add(2*time.Hour))

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(1), found.ID)
}

func TestFindOverlappingEvent_SkipsBrokenWindow(t *testing.T) {
	broken := dashainEvent(1)
	broken.StartTime = "25:99"
	good := dashainEvent(2)

	events := &mockEventRepo{}
	events.On("ListActiveForSpotOnDate", mock.Anything, int64(7), mock.Anything).
		Return([]*domain.UtsavEvent{broken, good}, nil)

	calc := NewCalculator(&mockSpotRepo{}, events, npt, nopLogger{})
	found, err := calc.FindOverlappingEvent(context.Background(), 7, at(20, 13, 0), at(20, 15, 0))

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(2), found.ID)
}

func TestFindOverlappingEvent_WindowKeepsSeconds(t *testing.T) {
	event := dashainEvent(4)
	event.EndTime = "19:59:30"

	events := &mockEventRepo{}
	events.On("ListActiveForSpotOnDate", mock.Anything, int64(7), onDate("2026-08-20")).
		Return([]*domain.UtsavEvent{event}, nil)

	calc := NewCalculator(&mockSpotRepo{}, events, npt, nopLogger{})
	start := time.Date(2026, 8, 20, 19, 59, 10, 0, npt)
	found, err := calc.FindOverlappingEvent(context.Background(), 7, start, start.Add(2*time.Hour))

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(4), found.ID)
}
