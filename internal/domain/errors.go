package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Database errors
	ErrMsgUnknownItem    = "unknown item"
	ErrMsgUnknownMachine = "unknown machine"

	// Request errors
	ErrMsgInvalidRate = "requested rate must be positive"

	// Override errors
	ErrMsgDuplicateOverride     = "duplicate override"
	ErrMsgMalformedOverridePath = "malformed override path"
	ErrMsgNegativeOverride      = "override rate must not be negative"

	// Resolution errors
	ErrMsgChainTooDeep = "production chain exceeds maximum depth"

	// Factory layout errors
	ErrMsgInvalidLayout = "invalid factory layout"

	// Configuration errors
	ErrMsgInvalidConfig = "invalid configuration"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Database errors
	ErrUnknownItem    = errors.New(ErrMsgUnknownItem)
	ErrUnknownMachine = errors.New(ErrMsgUnknownMachine)

	// Request errors
	ErrInvalidRate = errors.New(ErrMsgInvalidRate)

	// Override errors
	ErrDuplicateOverride     = errors.New(ErrMsgDuplicateOverride)
	ErrMalformedOverridePath = errors.New(ErrMsgMalformedOverridePath)
	ErrNegativeOverride      = errors.New(ErrMsgNegativeOverride)

	// Resolution errors
	ErrChainTooDeep = errors.New(ErrMsgChainTooDeep)

	ErrInvalidLayout = errors.New(ErrMsgInvalidLayout)

	// Configuration errors
	ErrInvalidConfig = errors.New(ErrMsgInvalidConfig)
)
