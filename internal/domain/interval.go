package domain

import "time"

// Overlaps сообщает, пересекаются ли интервалы [aStart, aEnd) и [bStart, bEnd):
// NOT (aEnd <= bStart OR aStart >= bEnd).
// Интервалы, которые только касаются границей (aEnd == bStart), не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
