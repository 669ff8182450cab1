package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultServerPort  = "8080"
	defaultHTTPTimeout = 10 * time.Second
	defaultJaegerURL   = "http://jaeger:14268/api/traces"
)

// Config holds the settings read from the environment. Call godotenv.Load
// before Load so a local .env file is taken into account.
type Config struct {
	SellerID    string
	IpayKey     string
	Endpoint    string
	HTTPTimeout time.Duration

	ServerPort    string
	PublicBaseURL string
	LogLevel      string

	TracingEnabled bool
	JaegerEndpoint string

	NgrokEnabled bool
}

// Load reads the configuration. Every missing required variable is reported
// in a single error.
func Load() (*Config, error) {
	cfg := &Config{
		SellerID:       os.Getenv("IPAY_SELLER_ID"),
		IpayKey:        os.Getenv("IPAY_KEY"),
		Endpoint:       os.Getenv("IPAY_ENDPOINT"),
		HTTPTimeout:    defaultHTTPTimeout,
		ServerPort:     getenv("SERVER_PORT", defaultServerPort),
		PublicBaseURL:  strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		TracingEnabled: os.Getenv("ENABLE_TRACING") == "1",
		JaegerEndpoint: getenv("JAEGER_ENDPOINT", defaultJaegerURL),
		NgrokEnabled:   os.Getenv("NGROK_ENABLED") == "1",
	}

	var missing []string
	if cfg.SellerID == "" {
		missing = append(missing, "IPAY_SELLER_ID")
	}
	if cfg.IpayKey == "" {
		missing = append(missing, "IPAY_KEY")
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if v := os.Getenv("IPAY_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid IPAY_HTTP_TIMEOUT")
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
