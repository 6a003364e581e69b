package gateway

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Mode selects the gateway environment.
type Mode int

const (
	ModeTest Mode = iota
	ModeLive
)

const (
	endpointTest = "https://sandbox.trexle.com"
	endpointLive = "https://core.trexle.com"
)

const (
	chargePath  = "/1/charges"
	refundPath  = "/api/v1/charges/%s/refunds"
	capturePath = "/api/v1/charges/%s/capture"
)

// TxnType identifies the logical operation a Session is performing.
type TxnType int

const (
	TxnCharge TxnType = iota
	TxnRefund
	TxnPreauth
	TxnCapture
)

// Config carries the construction-time settings of a Client. Mode and the
// credential pair are required; everything else has safe defaults.
type Config struct {
	Mode           Mode
	PrivateKey     string
	PublishableKey string

	// Debug enables request/response tracing through Logger.
	Debug bool

	// StrictReference switches reference validation from the historic
	// rule to the intended one; see validateTxn.
	StrictReference bool

	// InsecureSkipTLS disables TLS certificate and host verification.
	// Unsafe; never enable outside of broken test environments.
	InsecureSkipTLS bool

	// Logger receives debug traces when Debug is set. Defaults to the
	// standard logger; the host wires this to its own log sink.
	Logger *log.Logger
}

// Client is the stateless transaction core. A Client constructed with a bad
// mode or empty credentials is marked invalid and every operation on it
// reports a configuration failure instead of reaching the network.
type Client struct {
	endpoint        string
	debug           bool
	strictReference bool
	valid           bool
	sender          Sender
	logger          *log.Logger
	now             func() time.Time
}

// New builds a Client from cfg. Construction never fails loudly: an
// unrecognized mode or an empty key yields an invalid client, which every
// operation checks before proceeding.
func New(cfg Config) *Client {
	return NewWithSender(cfg, newHTTPSender(cfg.PrivateKey, cfg.PublishableKey, cfg.InsecureSkipTLS))
}

// NewWithSender builds a Client on a caller-supplied transport. Used by
// tests and by hosts that need custom HTTP behavior.
func NewWithSender(cfg Config, sender Sender) *Client {
	c := &Client{
		debug:           cfg.Debug,
		strictReference: cfg.StrictReference,
		sender:          sender,
		logger:          cfg.Logger,
		now:             time.Now,
	}
	if c.logger == nil {
		c.logger = log.Default()
	}

	switch cfg.Mode {
	case ModeTest:
		c.endpoint = endpointTest
	case ModeLive:
		c.endpoint = endpointLive
	default:
		return c
	}
	if cfg.PrivateKey == "" || cfg.PublishableKey == "" {
		return c
	}

	c.valid = true
	return c
}

// Valid reports whether construction succeeded.
func (c *Client) Valid() bool { return c.valid }

// Endpoint returns the resolved gateway base URL.
func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) logf(format string, v ...any) {
	if c.debug {
		c.logger.Printf(format, v...)
	}
}

// Charge authorizes and immediately captures req.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) Result {
	return c.authorize(ctx, req, toMinorUnits(req.Amount, req.currency()), true)
}

// Preauth places a hold on the card without capturing funds. The returned
// transaction id is later passed to Capture.
func (c *Client) Preauth(ctx context.Context, req ChargeRequest) Result {
	return c.authorize(ctx, req, toMinorUnits(req.Amount, req.currency()), false)
}

// Refund reverses a prior charge. amount is in major units of currency.
func (c *Client) Refund(ctx context.Context, transactionID string, amount float64, currency string) Result {
	if currency == "" {
		currency = DefaultCurrency
	}
	return c.refundMinor(ctx, transactionID, toMinorUnits(amount, currency))
}

// Capture finalizes a prior preauthorization. amount is in major units.
func (c *Client) Capture(ctx context.Context, transactionID string, amount float64, currency string) Result {
	if currency == "" {
		currency = DefaultCurrency
	}
	return c.captureMinor(ctx, transactionID, toMinorUnits(amount, currency))
}

// authorize is the shared charge/preauth path: validate, build, send,
// interpret. minorAmount is already converted.
func (c *Client) authorize(ctx context.Context, req ChargeRequest, minorAmount float64, capture bool) Result {
	if !c.valid {
		return failed(configErr(), nil)
	}
	if err := validateCard(req.Card, c.now()); err != nil {
		return failed(err, nil)
	}
	if err := validateTxn(minorAmount, req.Reference, c.strictReference); err != nil {
		return failed(err, nil)
	}

	c.logf("%s endpoint: %s%s", req.Reference, c.endpoint, chargePath)

	raw, err := c.sender.Send(ctx, http.MethodPost, c.endpoint+chargePath, req.formValues(minorAmount, capture))
	if err != nil {
		c.logf("%s transport failure: %v", req.Reference, err)
		return failed(transportErr(MsgResponseInvalid, err), nil)
	}
	return interpretCharge(raw)
}

func (c *Client) refundMinor(ctx context.Context, transactionID string, minorAmount float64) Result {
	if !c.valid {
		return failed(configErr(), nil)
	}
	if transactionID == "" {
		return failed(validationErr("transaction_id", MsgMissingTxnID), nil)
	}

	target := c.endpoint + sprintfPath(refundPath, transactionID)
	c.logf("refund %s endpoint: %s", transactionID, target)

	raw, err := c.sender.Send(ctx, http.MethodPost, target, amountOnlyValues(minorAmount))
	if err != nil {
		c.logf("refund %s transport failure: %v", transactionID, err)
		return failed(transportErr(MsgResponseInvalid, err), nil)
	}
	return interpretRefund(raw)
}

func (c *Client) captureMinor(ctx context.Context, transactionID string, minorAmount float64) Result {
	if !c.valid {
		return failed(configErr(), nil)
	}
	if transactionID == "" {
		return failed(validationErr("transaction_id", MsgMissingTxnID), nil)
	}

	target := c.endpoint + sprintfPath(capturePath, transactionID)
	c.logf("capture %s endpoint: %s", transactionID, target)

	raw, err := c.sender.Send(ctx, http.MethodPut, target, amountOnlyValues(minorAmount))
	if err != nil {
		c.logf("capture %s transport failure: %v", transactionID, err)
		return failed(transportErr(MsgResponseInvalid, err), nil)
	}
	return interpretCapture(raw)
}
