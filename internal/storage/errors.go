package storage

import (
	"errors"
	"fmt"
	"math"

	"vehicle-market-lab/internal/domain"
)

// Storage errors for listing sources.
var (
	// ErrSourceMissing is returned when the dataset does not exist.
	ErrSourceMissing = errors.New("listing source missing")

	// ErrSchema is returned when the dataset lacks a required column
	// or holds a value of the wrong type.
	ErrSchema = errors.New("listing schema mismatch")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidateListing checks the value constraints of a single listing.
func ValidateListing(l *domain.Listing) error {
	if l == nil {
		return ErrInvalidInput
	}
	if l.Price < 0 || math.IsNaN(l.Price) || math.IsInf(l.Price, 0) {
		return fmt.Errorf("%w: price %v", ErrInvalidInput, l.Price)
	}
	if l.Odometer < 0 || math.IsNaN(l.Odometer) || math.IsInf(l.Odometer, 0) {
		return fmt.Errorf("%w: odometer %v", ErrInvalidInput, l.Odometer)
	}
	if l.Condition == "" {
		return fmt.Errorf("%w: empty condition", ErrInvalidInput)
	}
	if l.Condition == domain.ConditionAll {
		return fmt.Errorf("%w: condition %q is reserved", ErrInvalidInput, l.Condition)
	}
	if l.Type == "" {
		return fmt.Errorf("%w: empty type", ErrInvalidInput)
	}
	return nil
}
