package wetten

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

// DefaultUserAgent is the default User-Agent header sent with
// wetten.overheid.nl requests.
const DefaultUserAgent = "wetwijzer-wetten-connector/1.0"

// DefaultBaseURL is the public root of the legislation repository.
const DefaultBaseURL = "https://wetten.overheid.nl"

const (
	// DefaultMaxRetries is the number of fetch attempts on transient failure.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the fixed wait between attempts.
	DefaultRetryDelay = 1 * time.Second

	// DefaultTimeout bounds a single fetch attempt.
	DefaultTimeout = 10 * time.Second
)

// WettenClientConfig holds configuration for a WettenClient.
type WettenClientConfig struct {
	// BaseURL is the root of the legislation site.
	// Default: "https://wetten.overheid.nl".
	BaseURL string

	// APIURL is the root of the structured JSON search API. Empty disables
	// SearchAPI.
	APIURL string

	// RateLimit is the minimum interval between HTTP requests.
	// Default: 1 second. Zero disables rate limiting.
	RateLimit time.Duration

	// MaxRetries is the number of attempts on transient failure. Default: 3.
	MaxRetries int

	// RetryDelay is the fixed wait between attempts. Default: 1 second.
	RetryDelay time.Duration

	// Timeout bounds a single attempt. Default: 10 seconds. Only applied
	// when HTTPClient is nil.
	Timeout time.Duration

	// HTTPClient is the underlying HTTP client used for requests.
	// If nil, a client with Timeout is constructed and wrapped with rate
	// limiting.
	HTTPClient HTTPClient

	// UserAgent is the User-Agent header sent with requests.
	// Default: "wetwijzer-wetten-connector/1.0".
	UserAgent string

	// EnableBreaker additionally guards fetches with a circuit breaker.
	// Disabled by default; retry semantics are unchanged either way.
	EnableBreaker bool

	// Logger receives retry and degradation events. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a WettenClientConfig with sensible defaults.
func DefaultConfig() WettenClientConfig {
	return WettenClientConfig{
		BaseURL:    DefaultBaseURL,
		RateLimit:  DefaultRequestInterval,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
	}
}

// WettenClient provides wetten.overheid.nl connectivity: fetching law pages
// by BWB identifier with bounded retries, searching by free text, and
// normalizing pages into Law documents. Fetched markup is cached
// read-through by identifier.
type WettenClient struct {
	httpClient HTTPClient
	baseURL    string
	apiURL     string
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	cache      *MarkupCache
	breaker    *gobreaker.CircuitBreaker[string]
	logger     *slog.Logger
	normalizer *Normalizer
}

// NewWettenClient creates a new WettenClient with the given configuration.
// If config.HTTPClient is nil, an *http.Client with the configured timeout
// is used and wrapped with rate limiting.
func NewWettenClient(config WettenClientConfig) *WettenClient {
	underlyingClient := config.HTTPClient
	if underlyingClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		underlyingClient = &http.Client{Timeout: timeout}
	}

	httpClient := underlyingClient
	if config.RateLimit > 0 {
		httpClient = NewRateLimitedHTTPClient(underlyingClient, config.RateLimit)
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	retryDelay := config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var breaker *gobreaker.CircuitBreaker[string]
	if config.EnableBreaker {
		breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name: "wetten-fetch",
		})
	}

	return &WettenClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiURL:     strings.TrimRight(config.APIURL, "/"),
		userAgent:  userAgent,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		cache:      NewMarkupCache(),
		breaker:    breaker,
		logger:     logger,
		normalizer: NewNormalizer(logger),
	}
}

// Cache exposes the markup cache, mainly for tests and cache warm-up.
func (wettenClient *WettenClient) Cache() *MarkupCache {
	return wettenClient.cache
}

// FetchLaw retrieves the raw page markup for a law by BWB identifier.
// The identifier is canonicalized (BWBR prefix prepended when absent); a
// cache hit avoids the network entirely. Transient failures are retried up
// to the configured bound with a fixed delay; the final attempt's error
// propagates.
func (wettenClient *WettenClient) FetchLaw(bwbID string) (string, error) {
	canonicalID, _ := CanonicalBWBID(bwbID)

	if markup, cached := wettenClient.cache.Get(canonicalID); cached {
		return markup, nil
	}

	pageURL := wettenClient.baseURL + "/" + canonicalID
	markup, err := wettenClient.fetch(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch law %s: %w", canonicalID, err)
	}

	wettenClient.cache.Set(canonicalID, markup)
	return markup, nil
}

// ParseLaw fetches and normalizes a law in one step. Total fetch failure is
// absorbed here: the returned Law is then populated entirely from the
// known-law table or generic defaults, so the caller always receives a
// well-formed document.
func (wettenClient *WettenClient) ParseLaw(bwbID string) *Law {
	canonicalID, _ := CanonicalBWBID(bwbID)

	markup, err := wettenClient.FetchLaw(canonicalID)
	if err != nil {
		wettenClient.logger.Warn("fetch failed, using fallback metadata",
			"bwb_id", canonicalID, "error", err)
		return &Law{
			Metadata: defaultMetadata(canonicalID),
			Content:  NewContent(),
		}
	}

	return wettenClient.normalizer.Normalize(markup, canonicalID)
}

// Search resolves a free-text or identifier query into an ordered list of
// candidate laws, capped at maxResults. A query that syntactically matches
// the identifier format is tried as a direct fetch first; on success a
// single result derived from the normalized metadata is returned, on any
// failure the full-text search runs instead. Result order matches the order
// of the underlying search response.
func (wettenClient *WettenClient) Search(query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	if canonicalID, isID := CanonicalBWBID(query); isID {
		markup, err := wettenClient.FetchLaw(canonicalID)
		if err == nil {
			law := wettenClient.normalizer.Normalize(markup, canonicalID)
			return []SearchResult{{
				Title: law.Metadata.Name,
				BWBID: canonicalID,
				URL:   wettenClient.baseURL + "/" + canonicalID,
			}}, nil
		}
		wettenClient.logger.Warn("direct lookup failed, falling back to search",
			"bwb_id", canonicalID, "error", err)
	}

	searchURL := wettenClient.baseURL + "/zoeken?" + url.Values{"zoekterm": {query}}.Encode()
	markup, err := wettenClient.fetch(searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search laws: %w", err)
	}

	results := parseSearchResults(markup, wettenClient.baseURL, maxResults)
	return results, nil
}

// SearchAPI issues the query as a structured JSON payload to the configured
// API endpoint, for deployments that expose one. Same contract as Search,
// different transport.
func (wettenClient *WettenClient) SearchAPI(query string, filters map[string]string, maxResults int) ([]SearchResult, error) {
	if wettenClient.apiURL == "" {
		return nil, fmt.Errorf("no API URL configured")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	payload := map[string]any{"query": query}
	if len(filters) > 0 {
		payload["filters"] = filters
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search payload: %w", err)
	}

	request, err := http.NewRequest(http.MethodPost, wettenClient.apiURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	request.Header.Set("User-Agent", wettenClient.userAgent)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := wettenClient.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to query search API: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("search API returned HTTP %d", response.StatusCode)
	}

	var decoded struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search API response: %w", err)
	}

	if len(decoded.Results) > maxResults {
		decoded.Results = decoded.Results[:maxResults]
	}
	return decoded.Results, nil
}

// fetch retrieves a URL with bounded retries, optionally behind the circuit
// breaker.
func (wettenClient *WettenClient) fetch(targetURL string) (string, error) {
	if wettenClient.breaker == nil {
		return wettenClient.fetchWithRetry(targetURL)
	}
	return wettenClient.breaker.Execute(func() (string, error) {
		return wettenClient.fetchWithRetry(targetURL)
	})
}

// fetchWithRetry retries transient errors (5xx, network failures) up to the
// configured bound with a fixed inter-attempt delay. Permanent errors (4xx)
// return immediately; the last transient error propagates after the final
// attempt.
func (wettenClient *WettenClient) fetchWithRetry(targetURL string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < wettenClient.maxRetries; attempt++ {
		if attempt > 0 {
			wettenClient.logger.Warn("retrying fetch",
				"url", targetURL,
				"attempt", attempt+1,
				"max_attempts", wettenClient.maxRetries,
				"error", lastErr)
			time.Sleep(wettenClient.retryDelay)
		}

		markup, err := wettenClient.fetchAttempt(targetURL)
		if err == nil {
			return markup, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", wettenClient.maxRetries, lastErr)
}

// fetchAttempt performs a single GET.
func (wettenClient *WettenClient) fetchAttempt(targetURL string) (string, error) {
	request, err := http.NewRequest(http.MethodGet, targetURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", targetURL, err)
	}
	request.Header.Set("User-Agent", wettenClient.userAgent)
	request.Header.Set("Accept", "text/html, application/xhtml+xml")

	response, err := wettenClient.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", targetURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 500 {
		return "", &retryableHTTPError{StatusCode: response.StatusCode, URL: targetURL}
	}
	if response.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d for %s", response.StatusCode, targetURL)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body from %s: %w", targetURL, err)
	}

	return string(body), nil
}

// retryableHTTPError represents an HTTP error that should trigger a retry.
type retryableHTTPError struct {
	StatusCode int
	URL        string
}

func (e *retryableHTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// isRetryableError returns true if the error warrants a retry attempt.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(*retryableHTTPError); ok {
		return true
	}
	errMsg := err.Error()
	retryablePatterns := []string{
		"connection reset",
		"connection refused",
		"timeout",
		"EOF",
		"broken pipe",
		"temporary failure",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
