package service

import (
	"fmt"
	"time"

	"github.com/damon-houk/cotacao/internal/domain/entity"
)

// ValidateRequest checks a raw quote request against today's calendar date.
// Checks run in a fixed order: currency, date syntax, ordering, length.
func ValidateRequest(currency, start, end string, today time.Time) (entity.Currency, entity.DateRange, error) {
	cur, ok := entity.ParseCurrency(currency)
	if !ok {
		return "", entity.DateRange{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}

	startDate, err := entity.ParseDate(start)
	if err != nil {
		return "", entity.DateRange{}, fmt.Errorf("%w: %v", ErrDateParse, err)
	}

	endDate, err := entity.ParseDate(end)
	if err != nil {
		return "", entity.DateRange{}, fmt.Errorf("%w: %v", ErrDateParse, err)
	}

	today = entity.DateOf(today)
	if startDate.After(endDate) || startDate.After(today) || endDate.After(today) {
		return "", entity.DateRange{}, fmt.Errorf("%w: %s..%s (today is %s)",
			ErrInvalidDateOrder, entity.FormatDate(startDate), entity.FormatDate(endDate), entity.FormatDate(today))
	}

	r := entity.DateRange{Start: startDate, End: endDate}
	if days := r.Days(); days > entity.MaxRangeDays {
		return "", entity.DateRange{}, fmt.Errorf("%w: %d days requested, at most %d allowed",
			ErrRangeTooLong, days, entity.MaxRangeDays)
	}

	return cur, r, nil
}
