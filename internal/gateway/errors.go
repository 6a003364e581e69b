package gateway

import "fmt"

// Kind classifies a gateway failure.
type Kind int

const (
	// KindConfiguration means the client itself is unusable (bad mode or
	// missing credentials at construction).
	KindConfiguration Kind = iota
	// KindValidation means a card or transaction parameter failed a
	// client-side check; the request never reached the network.
	KindValidation
	// KindTransport means the HTTP call or the response decode failed.
	KindTransport
	// KindDeclined means the remote gateway explicitly reported non-success.
	KindDeclined
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// Validation and processing messages surfaced to callers.
const (
	MsgObjectInvalid     = "The Gateway Object is invalid"
	MsgInvalidCardNumber = "Parameter Check failure: Invalid credit card number"
	MsgInvalidCardExpiry = "Parameter Check failure: Invalid credit card expiry date"
	MsgInvalidCardCVC    = "Parameter Check failure: Invalid credit card verification code"
	MsgInvalidAmount     = "Parameter Check failure: Invalid transaction amount"
	MsgInvalidReference  = "Parameter Check failure: Invalid transaction reference number"
	MsgMissingTxnID      = "Parameter Check failure: Missing transaction id"
	MsgResponseInvalid   = "An unspecified error was detected in the response content"
	MsgDeclined          = "Transaction Declined"
)

// Error is a structured gateway failure. Field is set for validation
// failures only. The wrapped cause, if any, is the raw transport diagnostic
// and is meant for logging, not for user display.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func configErr() *Error {
	return &Error{Kind: KindConfiguration, Message: MsgObjectInvalid}
}

func validationErr(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func transportErr(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, cause: cause}
}

func declinedErr(message string) *Error {
	if message == "" {
		message = MsgDeclined
	}
	return &Error{Kind: KindDeclined, Message: message}
}
