package pingone

import (
	"net/http"
	"strings"
	"time"
)

// ClientConfig carries the connection settings for the PingOne gateway and
// the PingOne auth service (token endpoint).
type ClientConfig struct {
	// APIBaseURL is the MFA gateway base URL (device/auth operations).
	APIBaseURL string
	// AuthBaseURL is the PingOne auth base URL (token endpoint).
	AuthBaseURL string
	// EnvironmentID is the environment used for worker token grants.
	EnvironmentID string
	// ClientID and ClientSecret identify the worker application.
	ClientID     string
	ClientSecret string
	// Region selects the PingOne region (NA, EU, CA, AP).
	Region string
	// Timeout bounds individual HTTP calls. Defaults to 15s.
	Timeout time.Duration
}

// Client is a client for the PingOne MFA gateway API.
type Client struct {
	cfg        ClientConfig
	HTTPClient *http.Client
}

// NewClient creates a new PingOne gateway client.
func NewClient(cfg ClientConfig) *Client {
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	cfg.AuthBaseURL = strings.TrimSuffix(cfg.AuthBaseURL, "/")
	if cfg.Region == "" {
		cfg.Region = "NA"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Region returns the configured PingOne region identifier.
func (c *Client) Region() string { return c.cfg.Region }

// EnvironmentID returns the environment used for worker token grants.
func (c *Client) EnvironmentID() string { return c.cfg.EnvironmentID }
