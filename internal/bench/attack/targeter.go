package attack

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync/atomic"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var jsonHeader = http.Header{"Content-Type": []string{"application/json"}}

// CreateTargeter posts a distinct target URL to /shorten on every hit.
func CreateTargeter(baseURL string) vegeta.Targeter {
	endpoint := baseURL + "/shorten"
	var seq atomic.Uint64

	return func(t *vegeta.Target) error {
		*t = vegeta.Target{
			Method: http.MethodPost,
			URL:    endpoint,
			Header: jsonHeader,
			Body:   fmt.Appendf(nil, `{"url":"https://example.com/%d"}`, seq.Add(1)),
		}
		return nil
	}
}

// RedirectTargeter resolves uniformly random codes out of codes.
func RedirectTargeter(baseURL string, codes []string) vegeta.Targeter {
	urls := make([]string, len(codes))
	for i, code := range codes {
		urls[i] = baseURL + "/" + code
	}

	return func(t *vegeta.Target) error {
		*t = vegeta.Target{Method: http.MethodGet, URL: urls[rand.IntN(len(urls))]}
		return nil
	}
}

// MixedTargeter creates with probability createRatio and redirects otherwise.
func MixedTargeter(baseURL string, codes []string, createRatio float64) vegeta.Targeter {
	create := CreateTargeter(baseURL)
	redirect := RedirectTargeter(baseURL, codes)

	return func(t *vegeta.Target) error {
		if rand.Float64() < createRatio {
			return create(t)
		}
		return redirect(t)
	}
}
