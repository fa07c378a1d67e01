package domain

import "errors"

var (
	ErrUnknownCalculationType   = errors.New("unknown calculation type")
	ErrUnknownAccommodationType = errors.New("unknown accommodation type")
	ErrUnknownCabinClass        = errors.New("unknown cabin class")
)
