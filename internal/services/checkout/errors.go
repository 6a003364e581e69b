package checkout

import "errors"

// Service errors
var (
	ErrMissingCardDetails = errors.New("missing card information")
	ErrDuplicateAttempt   = errors.New("duplicate payment attempt")
	ErrOrderNotFound      = errors.New("order not found")
	ErrRefundNotAllowed   = errors.New("order cannot be refunded")
	ErrCaptureNotAllowed  = errors.New("order cannot be captured")
	ErrRefundFailed       = errors.New("refund request failed")
	ErrCaptureFailed      = errors.New("capture request failed")
)
