package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"eTEats_web/models"

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Fetcher retrieves a single recipe by source identifier.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (models.Recipe, error)
}

// HTTPFetcher issues one GET per source, resolved against a base URL. No
// headers, authentication or retries are applied.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	client.Transport = otelhttp.NewTransport(client.Transport)

	return &HTTPFetcher{base: base, client: client}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, source string) (models.Recipe, error) {
	ref, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", source, err)
	}
	target := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", target, resp.Status)
	}

	var recipe models.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipe); err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}
	return recipe, nil
}
