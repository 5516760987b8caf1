package wetten

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// MockHTTPClient implements HTTPClient for testing.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (mockClient *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return mockClient.DoFunc(req)
}

func htmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// newTestClient creates a WettenClient with a mock HTTP client, no rate
// limiting, and a negligible retry delay for fast tests.
func newTestClient(mockClient *MockHTTPClient) *WettenClient {
	config := DefaultConfig()
	config.HTTPClient = mockClient
	config.RateLimit = 0
	config.RetryDelay = time.Millisecond
	return NewWettenClient(config)
}

func TestFetchLaw_Success(t *testing.T) {
	var capturedURL string
	var capturedUserAgent string

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedURL = req.URL.String()
			capturedUserAgent = req.Header.Get("User-Agent")
			return htmlResponse(http.StatusOK, "<html>wettekst</html>"), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	markup, err := wettenClient.FetchLaw("BWBR0005537")
	if err != nil {
		t.Fatalf("FetchLaw failed: %v", err)
	}

	if markup != "<html>wettekst</html>" {
		t.Errorf("markup: got %q", markup)
	}
	if capturedURL != "https://wetten.overheid.nl/BWBR0005537" {
		t.Errorf("Request URL: got %q", capturedURL)
	}
	if capturedUserAgent != DefaultUserAgent {
		t.Errorf("User-Agent: got %q, want %q", capturedUserAgent, DefaultUserAgent)
	}
}

func TestFetchLaw_CanonicalizesIdentifier(t *testing.T) {
	var capturedURL string

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedURL = req.URL.String()
			return htmlResponse(http.StatusOK, "<html></html>"), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	if _, err := wettenClient.FetchLaw("0005537"); err != nil {
		t.Fatalf("FetchLaw failed: %v", err)
	}

	if capturedURL != "https://wetten.overheid.nl/BWBR0005537" {
		t.Errorf("Request URL: got %q, want prefixed identifier", capturedURL)
	}
}

func TestFetchLaw_Caching(t *testing.T) {
	var requestCount atomic.Int32

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			requestCount.Add(1)
			return htmlResponse(http.StatusOK, "<html>wettekst</html>"), nil
		},
	}

	wettenClient := newTestClient(mockClient)

	if _, err := wettenClient.FetchLaw("BWBR0005537"); err != nil {
		t.Fatalf("First FetchLaw failed: %v", err)
	}
	// The bare-digit form canonicalizes to the same cache key.
	if _, err := wettenClient.FetchLaw("0005537"); err != nil {
		t.Fatalf("Second FetchLaw failed: %v", err)
	}

	if requestCount.Load() != 1 {
		t.Errorf("Expected 1 HTTP request (second should be cached), got %d", requestCount.Load())
	}
	if wettenClient.Cache().Len() != 1 {
		t.Errorf("Cache entries: got %d, want 1", wettenClient.Cache().Len())
	}
}

func TestFetchLaw_RetriesTransientThenSucceeds(t *testing.T) {
	var requestCount atomic.Int32

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			if requestCount.Add(1) < 3 {
				return htmlResponse(http.StatusInternalServerError, ""), nil
			}
			return htmlResponse(http.StatusOK, "<html>derde poging</html>"), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	markup, err := wettenClient.FetchLaw("BWBR0005537")
	if err != nil {
		t.Fatalf("FetchLaw failed: %v", err)
	}

	if markup != "<html>derde poging</html>" {
		t.Errorf("markup: got %q", markup)
	}
	if requestCount.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", requestCount.Load())
	}
}

func TestFetchLaw_RetriesExhausted(t *testing.T) {
	var requestCount atomic.Int32

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			requestCount.Add(1)
			return htmlResponse(http.StatusServiceUnavailable, ""), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	_, err := wettenClient.FetchLaw("BWBR0005537")
	if err == nil {
		t.Fatal("Expected error after exhausted retries")
	}

	if requestCount.Load() != DefaultMaxRetries {
		t.Errorf("Expected %d attempts, got %d", DefaultMaxRetries, requestCount.Load())
	}
	if !strings.Contains(err.Error(), fmt.Sprintf("failed after %d attempts", DefaultMaxRetries)) {
		t.Errorf("Error should name the attempt count, got %q", err.Error())
	}
}

func TestFetchLaw_ClientErrorNotRetried(t *testing.T) {
	var requestCount atomic.Int32

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			requestCount.Add(1)
			return htmlResponse(http.StatusNotFound, ""), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	_, err := wettenClient.FetchLaw("BWBR9999999")
	if err == nil {
		t.Fatal("Expected error for 404")
	}

	if requestCount.Load() != 1 {
		t.Errorf("4xx must not be retried: got %d attempts", requestCount.Load())
	}
}

func TestFetchLaw_NetworkErrorRetried(t *testing.T) {
	var requestCount atomic.Int32

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			requestCount.Add(1)
			return nil, fmt.Errorf("read tcp: connection reset by peer")
		},
	}

	wettenClient := newTestClient(mockClient)
	_, err := wettenClient.FetchLaw("BWBR0005537")
	if err == nil {
		t.Fatal("Expected error after exhausted retries")
	}

	if requestCount.Load() != DefaultMaxRetries {
		t.Errorf("Expected %d attempts for network error, got %d",
			DefaultMaxRetries, requestCount.Load())
	}
}

func TestParseLaw_FallbackOnFetchFailure(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusNotFound, ""), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	law := wettenClient.ParseLaw("BWBR0001840")

	if law.Metadata.Name != "Grondwet" {
		t.Errorf("Name: got %q, want known-law fallback", law.Metadata.Name)
	}
	if law.Metadata.EntryIntoForce != "1815-03-24" {
		t.Errorf("EntryIntoForce: got %q, want 1815-03-24", law.Metadata.EntryIntoForce)
	}
	if law.Content.Articles == nil {
		t.Error("Content must be initialized on the fallback path")
	}
}

func TestParseLaw_NormalizesFetchedPage(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK,
				`<html><body><h1 class="wet-titel">Burgerlijk Wetboek</h1></body></html>`), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	law := wettenClient.ParseLaw("BWBR0005291")

	if law.Metadata.Name != "Burgerlijk Wetboek" {
		t.Errorf("Name: got %q", law.Metadata.Name)
	}
	if law.Metadata.Domain != DomainCivil {
		t.Errorf("Domain: got %q, want %q", law.Metadata.Domain, DomainCivil)
	}
}

func TestSearch_DirectIdentifier(t *testing.T) {
	var capturedURL string

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedURL = req.URL.String()
			return htmlResponse(http.StatusOK,
				`<html><body><h1 class="wet-titel">Algemene wet bestuursrecht</h1></body></html>`), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	results, err := wettenClient.Search("BWBR0005537", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if capturedURL != "https://wetten.overheid.nl/BWBR0005537" {
		t.Errorf("Identifier query must fetch directly, got URL %q", capturedURL)
	}
	if len(results) != 1 {
		t.Fatalf("Results: got %d, want 1", len(results))
	}
	if results[0].BWBID != "BWBR0005537" {
		t.Errorf("BWBID: got %q", results[0].BWBID)
	}
	if results[0].Title != "Algemene wet bestuursrecht" {
		t.Errorf("Title: got %q, want normalized law name", results[0].Title)
	}
}

func TestSearch_DirectIdentifierFailureFallsBackToSearch(t *testing.T) {
	var searchURL string

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			if strings.Contains(req.URL.Path, "zoeken") {
				searchURL = req.URL.String()
				return htmlResponse(http.StatusOK, "<html></html>"), nil
			}
			return htmlResponse(http.StatusNotFound, ""), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	results, err := wettenClient.Search("BWBR1234567", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if searchURL == "" {
		t.Fatal("Expected fallback to the full-text search endpoint")
	}
	if !strings.Contains(searchURL, "zoekterm=BWBR1234567") {
		t.Errorf("Search URL: got %q, want zoekterm parameter", searchURL)
	}
	if len(results) != 0 {
		t.Errorf("Results: got %d, want 0 for empty page", len(results))
	}
}

func TestSearch_FullText(t *testing.T) {
	resultsPage := `<html><body>
	<div class="zoek-result">
	  <h2>Wet op de arbeidsovereenkomst</h2>
	  <a href="/BWBR0009405/2024-01-01">bekijk</a>
	</div>
	<div class="zoek-result">
	  <h2>Arbeidsomstandighedenwet</h2>
	  <a href="https://wetten.overheid.nl/BWBR0010346">bekijk</a>
	</div>
	</body></html>`

	var capturedURL string
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedURL = req.URL.String()
			return htmlResponse(http.StatusOK, resultsPage), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	results, err := wettenClient.Search("arbeidsovereenkomst", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !strings.Contains(capturedURL, "/zoeken?zoekterm=arbeidsovereenkomst") {
		t.Errorf("Search URL: got %q", capturedURL)
	}
	if len(results) != 2 {
		t.Fatalf("Results: got %d, want 2", len(results))
	}
	if results[0].BWBID != "BWBR0009405" || results[1].BWBID != "BWBR0010346" {
		t.Errorf("Result order must match the page: got %q, %q",
			results[0].BWBID, results[1].BWBID)
	}
	if results[0].URL != "https://wetten.overheid.nl/BWBR0009405/2024-01-01" {
		t.Errorf("Relative href must be resolved against the base URL, got %q", results[0].URL)
	}
}

func TestSearch_MaxResultsCap(t *testing.T) {
	var pageBuilder strings.Builder
	pageBuilder.WriteString("<html><body>")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&pageBuilder,
			`<div class="result"><h2>Wet %d</h2><a href="/BWBR000000%d">link</a></div>`, i, i)
	}
	pageBuilder.WriteString("</body></html>")

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, pageBuilder.String()), nil
		},
	}

	wettenClient := newTestClient(mockClient)
	results, err := wettenClient.Search("wet", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("Results: got %d, want cap of 3", len(results))
	}
}

func TestSearchAPI(t *testing.T) {
	var capturedMethod string
	var capturedContentType string
	var capturedPayload map[string]any

	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			capturedMethod = req.Method
			capturedContentType = req.Header.Get("Content-Type")
			if err := json.NewDecoder(req.Body).Decode(&capturedPayload); err != nil {
				t.Fatalf("Failed to decode request payload: %v", err)
			}
			return htmlResponse(http.StatusOK,
				`{"results": [{"title": "Burgerlijk Wetboek", "bwb_id": "BWBR0005291", "url": "https://wetten.overheid.nl/BWBR0005291"}]}`), nil
		},
	}

	config := DefaultConfig()
	config.HTTPClient = mockClient
	config.RateLimit = 0
	config.APIURL = "https://api.example.nl"
	wettenClient := NewWettenClient(config)

	results, err := wettenClient.SearchAPI("koopcontract", map[string]string{"domein": "civiel"}, 10)
	if err != nil {
		t.Fatalf("SearchAPI failed: %v", err)
	}

	if capturedMethod != http.MethodPost {
		t.Errorf("Method: got %q, want POST", capturedMethod)
	}
	if capturedContentType != "application/json" {
		t.Errorf("Content-Type: got %q", capturedContentType)
	}
	if capturedPayload["query"] != "koopcontract" {
		t.Errorf("Payload query: got %v", capturedPayload["query"])
	}
	if len(results) != 1 || results[0].BWBID != "BWBR0005291" {
		t.Errorf("Results: got %+v", results)
	}
}

func TestSearchAPI_NoEndpointConfigured(t *testing.T) {
	wettenClient := newTestClient(&MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			t.Fatal("No HTTP request expected without an API URL")
			return nil, nil
		},
	})

	if _, err := wettenClient.SearchAPI("koopcontract", nil, 10); err == nil {
		t.Error("Expected error when no API URL is configured")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&retryableHTTPError{StatusCode: 503, URL: "x"}, true},
		{fmt.Errorf("connection reset by peer"), true},
		{fmt.Errorf("connection refused"), true},
		{fmt.Errorf("i/o timeout"), true},
		{fmt.Errorf("unexpected EOF"), true},
		{fmt.Errorf("broken pipe"), true},
		{fmt.Errorf("HTTP 404 for url"), false},
		{fmt.Errorf("no such host"), false},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%v): got %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL: got %q, want %q", config.BaseURL, DefaultBaseURL)
	}
	if config.RateLimit != DefaultRequestInterval {
		t.Errorf("RateLimit: got %v, want %v", config.RateLimit, DefaultRequestInterval)
	}
	if config.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries: got %d, want %d", config.MaxRetries, DefaultMaxRetries)
	}
	if config.Timeout != DefaultTimeout {
		t.Errorf("Timeout: got %v, want %v", config.Timeout, DefaultTimeout)
	}
	if config.EnableBreaker {
		t.Error("EnableBreaker: expected disabled by default")
	}
}

func TestNewWettenClient_Defaults(t *testing.T) {
	wettenClient := NewWettenClient(WettenClientConfig{})

	if wettenClient.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}
	if wettenClient.cache == nil {
		t.Error("Expected cache to be initialized")
	}
	if wettenClient.baseURL != DefaultBaseURL {
		t.Errorf("baseURL: got %q, want %q", wettenClient.baseURL, DefaultBaseURL)
	}
	if wettenClient.maxRetries != DefaultMaxRetries {
		t.Errorf("maxRetries: got %d, want %d", wettenClient.maxRetries, DefaultMaxRetries)
	}
	if wettenClient.breaker != nil {
		t.Error("breaker: expected nil when not enabled")
	}
}
