package config

// GatewaySettings is the configuration surface the host platform hands the
// payment module: operating mode, per-environment credential pairs, the
// charge-vs-preauthorize toggle, and the debug switch.
type GatewaySettings struct {
	LiveMode       bool
	PrivateKey     string
	PublishableKey string

	// CaptureOnCharge charges the card immediately; when false checkout
	// only preauthorizes and the back office captures later.
	CaptureOnCharge bool

	Debug           bool
	StrictReference bool

	// InsecureSkipTLS disables certificate verification on the gateway
	// call. Unsafe; only ever for broken test environments.
	InsecureSkipTLS bool
}

// LoadGatewaySettings reads the gateway configuration from the environment.
// The credential pair is picked per environment the way the host stores
// them: separate test and live key sets, selected by TREXLE_LIVE_MODE.
func LoadGatewaySettings() GatewaySettings {
	live := GetBoolEnv("TREXLE_LIVE_MODE", false)

	s := GatewaySettings{
		LiveMode:        live,
		CaptureOnCharge: GetBoolEnv("TREXLE_CHARGE", true),
		Debug:           GetBoolEnv("TREXLE_DEBUG", false),
		StrictReference: GetBoolEnv("TREXLE_STRICT_REFERENCE", false),
		InsecureSkipTLS: GetBoolEnv("TREXLE_INSECURE_SKIP_TLS", false),
	}
	if live {
		s.PrivateKey = GetEnv("TREXLE_PRIVATE_KEY_LIVE", "")
		s.PublishableKey = GetEnv("TREXLE_PUBLISHABLE_KEY_LIVE", "")
	} else {
		s.PrivateKey = GetEnv("TREXLE_PRIVATE_KEY_TEST", "")
		s.PublishableKey = GetEnv("TREXLE_PUBLISHABLE_KEY_TEST", "")
	}
	return s
}

// ShopName is used to build the transaction reference shown on gateway
// statements and receipts.
func ShopName() string {
	return GetEnv("SHOP_NAME", "Shop")
}
