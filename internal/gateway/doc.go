/*
Package gateway implements the Trexle card-processing client.

The package covers the full remote transaction surface:
- Charge (immediate capture)
- Preauthorization (funds hold, captured later)
- Capture (finalize a previous preauthorization)
- Refund

Usage:

	client := gateway.New(gateway.Config{
	    Mode:           gateway.ModeTest,
	    PrivateKey:     privateKey,
	    PublishableKey: publishableKey,
	})

	res := client.Charge(ctx, gateway.ChargeRequest{
	    Amount:    49.95,
	    Currency:  "USD",
	    Reference: "My Shop - Cart ID: 42",
	    Email:     "jane@example.com",
	    Card: gateway.Card{
	        Number:      "4111111111111111",
	        ExpiryMonth: "07",
	        ExpiryYear:  "29",
	        CVC:         "123",
	        Name:        "Jane Doe",
	    },
	})
	if res.Success {
	    // res.TransactionID holds the gateway token
	}

A stateful Session is also available for callers that assemble a transaction
field by field (Reset, setters, then one operation call). Sessions are not
safe for concurrent use; use one Session per in-flight attempt.

Error Handling:

Every operation returns a Result. Failures are carried as data in Result.Err,
a structured *Error with a Kind (Configuration, Validation, Transport,
Declined) and, for validation failures, the offending field. No operation
panics and the happy path never requires error unwrapping.

Client-side validation runs before any network I/O, so a request with a bad
card number or reference never reaches the remote gateway.
*/
package gateway
