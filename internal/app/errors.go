package app

import "errors"

// InvalidRequestError is special error type returned when any request params are invalid.
type InvalidRequestError string

// Error implements error interface.
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequestError checks if given error is caused by invalid request.
func IsInvalidRequestError(err error) bool {
	var ire InvalidRequestError
	return errors.As(err, &ire)
}

// TooManyRequestsError is special error type returned when an operation is rejected by rate limiting.
type TooManyRequestsError string

// Error implements error interface.
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequestsError checks if given error is caused by rate limiting.
func IsTooManyRequestsError(err error) bool {
	var tmr TooManyRequestsError
	return errors.As(err, &tmr)
}
