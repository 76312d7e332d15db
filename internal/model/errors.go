package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// ErrUpstreamUnavailable is fatal only for candidate collection when no
	// fallback set exists for a city; every other collaborator degrades.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUnschedulableTrip and ErrInvariantViolation indicate logic bugs or
	// impossible inputs. They are always surfaced, never swallowed.
	ErrUnschedulableTrip  = errors.New("unschedulable trip")
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrIntentResolutionFailed marks a chat turn whose structured preview
	// could not be recovered; the turn still returns a plain-text reply.
	ErrIntentResolutionFailed = errors.New("intent resolution failed")
)
