package domain

import (
	"errors"
	"fmt"
)

// DomainError keeps backward compatibility for generic codes.
type DomainError struct {
	Code string
	Err  error
}

func (e DomainError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	if e.Code == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e DomainError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// InvalidSelectionError means the chosen trip type cannot be priced
// against the package (missing price or round trip not offered).
type InvalidSelectionError struct {
	TripType string
	Msg      string
}

func (e InvalidSelectionError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid selection %q: %s", e.TripType, e.Msg)
	}
	return fmt.Sprintf("invalid selection %q", e.TripType)
}

// InvalidConfigError means the package pricing fields are unusable
// (e.g. negative amounts). Authoring inconsistencies that remain
// computable are reported as a split warning instead.
type InvalidConfigError struct {
	PackageID string
	Msg       string
}

func (e InvalidConfigError) Error() string {
	if e.PackageID != "" {
		return fmt.Sprintf("invalid package config %s: %s", e.PackageID, e.Msg)
	}
	return "invalid package config: " + e.Msg
}

// InvalidTransitionError names both states so a stale panel can be
// diagnosed from the message alone.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// MissingDriverError guards entry into the confirmed state.
type MissingDriverError struct {
	ReservationID int64
}

func (e MissingDriverError) Error() string {
	if e.ReservationID > 0 {
		return fmt.Sprintf("reservation %d has no driver assigned", e.ReservationID)
	}
	return "reservation has no driver assigned"
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsInvalidSelection(err error) bool {
	var target InvalidSelectionError
	return errors.As(err, &target)
}

func IsInvalidConfig(err error) bool {
	var target InvalidConfigError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsMissingDriver(err error) bool {
	var target MissingDriverError
	return errors.As(err, &target)
}
