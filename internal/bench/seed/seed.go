package seed

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const batchPath = "/api/v1/urls/batch"

var ErrBatchSize = errors.New("batch size must be positive")

// Options configures seeding. Rate caps batch requests per second and zero
// means unlimited. Progress goes to Out when it is set.
type Options struct {
	BaseURL            string
	Count              int
	BatchSize          int
	Rate               float64
	Timeout            time.Duration
	InsecureSkipVerify bool
	Out                io.Writer
}

type seeder struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter

	mu   sync.Mutex
	done int
}

// Run creates opts.Count links through the batch API and returns their codes
// in creation order.
func Run(ctx context.Context, opts Options) ([]string, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrBatchSize, opts.BatchSize)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	workers := runtime.NumCPU() * 2
	s := newSeeder(opts, workers)
	fmt.Fprintf(opts.Out, "Seeding %d URLs (batch size: %d, workers: %d)...\n", opts.Count, opts.BatchSize, workers)

	batches := make([][]string, (opts.Count+opts.BatchSize-1)/opts.BatchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range batches {
		first := i * opts.BatchSize
		n := min(opts.BatchSize, opts.Count-first)
		g.Go(func() error {
			codes, err := s.batch(gctx, first, n)
			if err != nil {
				return fmt.Errorf("batch at %d: %w", first, err)
			}
			batches[i] = codes
			s.progress(len(codes))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	codes := make([]string, 0, opts.Count)
	for _, b := range batches {
		codes = append(codes, b...)
	}
	fmt.Fprintf(opts.Out, "\nSeeding complete: %d codes\n", len(codes))
	return codes, nil
}

func newSeeder(opts Options, workers int) *seeder {
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	return &seeder{
		opts: opts,
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: opts.InsecureSkipVerify},
				MaxIdleConns:        workers * 2,
				MaxIdleConnsPerHost: workers * 2,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (s *seeder) progress(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done += n
	fmt.Fprintf(s.opts.Out, "\rProgress: %d/%d", s.done, s.opts.Count)
}

// batch shortens n synthetic targets numbered from first.
func (s *seeder) batch(ctx context.Context, first, n int) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body struct {
		URLs []string `json:"urls"`
	}
	for i := first; i < first+n; i++ {
		body.URLs = append(body.URLs, fmt.Sprintf("https://example.com/seed/%d", i))
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.BaseURL+batchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var created struct {
		URLs []struct {
			ShortCode string `json:"short_code"`
		} `json:"urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, err
	}
	codes := make([]string, len(created.URLs))
	for i, u := range created.URLs {
		codes[i] = u.ShortCode
	}
	return codes, nil
}
