package domain

// Availability результат проверки вместимости парковки на интервал
type Availability struct {
	Allowed     bool
	Reason      string
	Overlapping int // пересекающиеся pending/active бронирования того же типа транспорта
	Capacity    int // статическая вместимость парковки для типа транспорта
}

// AvailableCapacity returns the number of free places (never negative)
func (a *Availability) AvailableCapacity() int {
	if free := a.Capacity - a.Overlapping; free > 0 {
		return free
	}
	return 0
}

// IsFull returns true if the interval has no free places
func (a *Availability) IsFull() bool {
	return a.AvailableCapacity() == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
// Парковка без мест для типа транспорта считается заполненной
func (a *Availability) OccupancyRate() float64 {
	if a.Capacity == 0 {
		return 100
	}
	occupied := a.Capacity - a.AvailableCapacity()
	return float64(occupied) / float64(a.Capacity) * 100
}
