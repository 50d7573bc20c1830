package utils

import (
	"time"

	"github.com/jinzhu/now"
)

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// StartOfDayDaysAgo retorna o início do dia de reference menos days dias
func StartOfDayDaysAgo(reference time.Time, days int) time.Time {
	return now.With(reference).BeginningOfDay().AddDate(0, 0, -days)
}
