package stats

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jmolenaar/thumbcfg/internal/logging"
	"github.com/jmolenaar/thumbcfg/internal/settings"
)

const (
	// DefaultBaseURL is the usage reporting endpoint
	DefaultBaseURL = "https://stats.thumbcfg.dev/v1/usage"

	// DefaultTimeout is the HTTP request timeout
	DefaultTimeout = 10 * time.Second
)

// Reporter sends anonymous usage reports for an installation.
type Reporter struct {
	// BaseURL is the reporting endpoint
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewReporter creates a reporter against the default endpoint.
func NewReporter() *Reporter {
	return &Reporter{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (r *Reporter) SetTimeout(timeout time.Duration) {
	r.HTTPClient.Timeout = timeout
}

// Send reports the current configuration. It is a no-op when the
// statistics toggle is off or no installation identifier was assigned.
func (r *Reporter) Send(cfg *settings.Settings) error {
	if !cfg.StatisticsEnabled {
		return nil
	}
	id := cfg.StatisticsID()
	if id == "" {
		return nil
	}

	desc := cfg.Descriptor()
	params := url.Values{}
	params.Set("id", id)
	params.Set("app", desc.Name)
	params.Set("version", desc.Version)
	params.Set("printer", cfg.PrinterModelID())
	params.Set("options", strings.Join(cfg.CornerOptionIDs(), ","))

	req, err := http.NewRequest("POST", r.BaseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return settings.NewStoreError("failed to create usage report request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return settings.NewStoreError("usage report request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return settings.NewStoreError(
			fmt.Sprintf("usage report rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			nil,
		)
	}

	return nil
}

// SendBestEffort reports the current configuration and logs any failure
// instead of returning it.
func (r *Reporter) SendBestEffort(cfg *settings.Settings) {
	if err := r.Send(cfg); err != nil {
		logging.Warn("Usage report failed", zap.Error(err))
	}
}
