package service

import (
	"time"

	"github.com/socialnet/api/internal/common/constants"
)

// BucketByDate counts timestamps per UTC calendar day within [start, end].
// Days without any timestamp are absent from the result.
func BucketByDate(timestamps []time.Time, start, end time.Time) map[string]int64 {
	out := make(map[string]int64)
	first := truncateDay(start)
	last := truncateDay(end)
	if last.Before(first) {
		return out
	}
	for _, ts := range timestamps {
		day := truncateDay(ts)
		if day.Before(first) || day.After(last) {
			continue
		}
		out[day.Format(constants.DateLayout)]++
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
