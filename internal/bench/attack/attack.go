package attack

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	TypeCreate   = "create"
	TypeRedirect = "redirect"
	TypeMixed    = "mixed"
)

var ErrNoCodes = errors.New("attack requires seeded codes")

type Config struct {
	BaseURL            string
	Codes              []string
	Rate               int
	Duration           time.Duration
	CreateRatio        float64
	Type               string
	InsecureSkipVerify bool
	Connections        int
	MaxWorkers         uint64
}

// NewTargeter picks the target mix for cfg.Type.
func NewTargeter(cfg *Config) (vegeta.Targeter, error) {
	switch cfg.Type {
	case TypeCreate:
		return CreateTargeter(cfg.BaseURL), nil
	case TypeRedirect:
		if len(cfg.Codes) == 0 {
			return nil, fmt.Errorf("%s: %w", cfg.Type, ErrNoCodes)
		}
		return RedirectTargeter(cfg.BaseURL, cfg.Codes), nil
	case TypeMixed:
		if len(cfg.Codes) == 0 {
			return nil, fmt.Errorf("%s: %w", cfg.Type, ErrNoCodes)
		}
		return MixedTargeter(cfg.BaseURL, cfg.Codes, cfg.CreateRatio), nil
	default:
		return nil, fmt.Errorf("unknown attack type: %s", cfg.Type)
	}
}

// Run attacks the service and writes a text report to w. Redirects are not
// followed so GET /{code} is measured on its own.
func Run(cfg *Config, w io.Writer) error {
	targeter, err := NewTargeter(cfg)
	if err != nil {
		return err
	}

	opts := []func(*vegeta.Attacker){
		vegeta.Redirects(vegeta.NoFollow),
		vegeta.KeepAlive(true),
		vegeta.Connections(cfg.Connections),
		vegeta.Timeout(5 * time.Second),
		vegeta.MaxBody(0),
		vegeta.HTTP2(false),
		vegeta.TLSConfig(&tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}),
	}
	if cfg.MaxWorkers > 0 {
		opts = append(opts, vegeta.MaxWorkers(cfg.MaxWorkers))
	}
	attacker := vegeta.NewAttacker(opts...)

	rate := vegeta.Rate{Freq: cfg.Rate, Per: time.Second}
	fmt.Fprintf(w, "Starting %s attack: rate=%d/s duration=%s\n", cfg.Type, cfg.Rate, cfg.Duration)

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, cfg.Duration, cfg.Type) {
		metrics.Add(res)
	}
	metrics.Close()

	reporter := vegeta.NewTextReporter(&metrics)
	return reporter.Report(w)
}
