package gateway

import "fmt"

// Result is the single outcome contract of every gateway operation.
// Exactly one of the two shapes is populated: Success with TransactionID,
// or Err. Raw holds the decoded gateway response when one was received.
type Result struct {
	Success       bool
	TransactionID string
	Err           *Error
	Raw           map[string]any
}

// ErrorMessage returns the failure message, or "" on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}

func approved(token string, raw map[string]any) Result {
	return Result{Success: true, TransactionID: token, Raw: raw}
}

func failed(err *Error, raw map[string]any) Result {
	return Result{Err: err, Raw: raw}
}

func sprintfPath(format, transactionID string) string {
	return fmt.Sprintf(format, transactionID)
}

// interpretCharge maps a charge/preauth response. Success is the nested
// response.success field being truthy 1; the token under the same nesting is
// the transaction id. Anything else is a decline carrying the top-level
// error_description.
func interpretCharge(raw map[string]any) Result {
	inner := nestedResponse(raw)
	if truthyOne(inner["success"]) {
		return approved(stringValue(inner["token"]), raw)
	}
	return failed(declinedErr(stringValue(raw["error_description"])), raw)
}

// interpretRefund maps a refund response. The gateway reports a freshly
// accepted refund as status_message "Pending"; the token is the refund id.
func interpretRefund(raw map[string]any) Result {
	inner := nestedResponse(raw)
	if stringValue(inner["status_message"]) == "Pending" {
		return approved(stringValue(inner["token"]), raw)
	}
	return failed(declinedErr(stringValue(raw["error_description"])), raw)
}

// interpretCapture maps a capture response; same success shape as a charge.
func interpretCapture(raw map[string]any) Result {
	inner := nestedResponse(raw)
	if truthyOne(inner["success"]) {
		return approved(stringValue(inner["token"]), raw)
	}
	return failed(declinedErr(stringValue(raw["error_description"])), raw)
}

func nestedResponse(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	inner, _ := raw["response"].(map[string]any)
	return inner
}

// truthyOne matches the gateway's loosely-typed success flag: the JSON
// number 1, the string "1", or a bare true.
func truthyOne(v any) bool {
	switch x := v.(type) {
	case float64:
		return x == 1
	case bool:
		return x
	case string:
		return x == "1"
	default:
		return false
	}
}

func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatAmount(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
