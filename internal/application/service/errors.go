package service

import "errors"

// Request errors. Handlers map them to status codes with errors.Is.
var (
	ErrInvalidCurrency  = errors.New("invalid currency")
	ErrDateParse        = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateOrder = errors.New("start date must not be after end date and no date may be in the future")
	ErrRangeTooLong     = errors.New("date range is too long")
	ErrNoStoredData     = errors.New("no stored quote for the requested date")
	ErrUnknownSource    = errors.New("unknown rate source")
)
