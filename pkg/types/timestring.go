package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	layoutHHMM   = "15:04"
	layoutHHMMSS = "15:04:05"
)

// TimeString время суток без даты в формате "HH:MM" или "HH:MM:SS"
// Хранится в Postgres в колонке типа TIME
type TimeString string

// NewTimeString берёт время суток из time.Time; секунды сохраняются, если не нулевые
func NewTimeString(t time.Time) TimeString {
	if t.Second() != 0 {
		return TimeString(t.Format(layoutHHMMSS))
	}
	return TimeString(t.Format(layoutHHMM))
}

// NewTimeStringFromString разбирает "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := parse(s)
	if err != nil {
		return "", err
	}
	return NewTimeString(t), nil
}

func (ts TimeString) String() string {
	return string(ts)
}

func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет формат
func (ts TimeString) Validate() error {
	_, err := parse(string(ts))
	return err
}

// secondOfDay количество секунд от полуночи
func (ts TimeString) secondOfDay() (int, error) {
	t, err := parse(string(ts))
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// IsAfter сравнивает время суток; некорректное значение никогда не "позже"
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.secondOfDay()
	b, errB := other.secondOfDay()
	return errA == nil && errB == nil && a > b
}

// On соединяет календарную дату date с этим временем суток в часовом поясе loc
func (ts TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	t, err := parse(string(ts))
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

// Scan реализует sql.Scanner для колонки TIME
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	t, err := parse(string(ts))
	if err != nil {
		return nil, err
	}
	return t.Format(layoutHHMMSS), nil
}

func parse(s string) (time.Time, error) {
	if t, err := time.Parse(layoutHHMM, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutHHMMSS, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}
