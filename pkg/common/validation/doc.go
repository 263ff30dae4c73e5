// Package validation provides common validation utilities for configuration
// parameters and timer registrations across the tickflow library.
//
// Every function returns nil or a *errors.ValidationError, so callers can
// check failures with errors.IsValidationError or errors.Is against
// errors.ErrInvalidConfiguration.
package validation
