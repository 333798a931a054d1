package linkprobe

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"seoaudit/internal/logging"
)

const (
	DefaultConcurrency = 10
	DefaultTimeout     = 5 * time.Second
	DefaultMaxTargets  = 50

	defaultUserAgent = "seoaudit/1.0 (+https://github.com/seoaudit)"
)

// Config tunes the prober. Zero values take the defaults above;
// negative values are contract violations and fail construction.
type Config struct {
	// Concurrency caps the number of probes in flight.
	Concurrency int
	// Timeout bounds each individual probe.
	Timeout time.Duration
	// MaxTargets caps how many targets a single batch admits. Dedup
	// happens before truncation, so the cap cuts unique targets only.
	MaxTargets int
	// RateLimit throttles probe starts across the batch, in probes per
	// second. Zero means unlimited.
	RateLimit rate.Limit
	// UserAgent is sent with every probe.
	UserAgent string

	// Transport overrides the HTTP transport; used by tests. The
	// client wrapping it never follows redirects regardless.
	Transport http.RoundTripper
}

func (c Config) withDefaults() Config {
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxTargets == 0 {
		c.MaxTargets = DefaultMaxTargets
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return c
}

func (c Config) validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxTargets < 1 {
		return fmt.Errorf("max targets must be at least 1, got %d", c.MaxTargets)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// Prober checks link targets for liveness. It is safe for concurrent
// use; each Check call runs its own worker pool.
type Prober struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New builds a Prober, applying defaults for zero config values and
// rejecting invalid ones.
func New(cfg Config) (*Prober, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("linkprobe config: %w", err)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: cfg.Concurrency,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}

	p := &Prober{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// observe 3xx as-is, never follow
				return http.ErrUseLastResponse
			},
		},
		logger: logging.New("linkprobe"),
	}
	if cfg.RateLimit > 0 {
		p.limiter = rate.NewLimiter(cfg.RateLimit, 1)
	}
	return p, nil
}

// Check probes the given targets and returns exactly one Outcome per
// admitted target, positionally aligned with the (truncated) input.
// Probe failures are data, not errors: every transport problem folds
// into a StatusUnreachable outcome. Cancelling ctx stops admitting new
// probes; targets never started fold to unreachable so the outcome set
// stays complete.
func (p *Prober) Check(ctx context.Context, targets []Target) []Outcome {
	if len(targets) > p.cfg.MaxTargets {
		p.logger.Debug("truncating probe batch", "targets", len(targets), "cap", p.cfg.MaxTargets)
		targets = targets[:p.cfg.MaxTargets]
	}
	if len(targets) == 0 {
		return nil
	}

	start := time.Now()
	outcomes := make([]Outcome, len(targets))

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)
	for i, tgt := range targets {
		if ctx.Err() != nil {
			for j := i; j < len(targets); j++ {
				outcomes[j] = Outcome{Target: targets[j], Status: StatusUnreachable}
			}
			break
		}
		g.Go(func() error {
			outcomes[i] = p.probe(ctx, tgt)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	p.logger.Debug("probe batch done", "targets", len(targets), "elapsed", time.Since(start))
	return outcomes
}

func (p *Prober) probe(ctx context.Context, tgt Target) Outcome {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return Outcome{Target: tgt, Status: StatusUnreachable}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, tgt.URL, nil)
	if err != nil {
		return Outcome{Target: tgt, Status: StatusUnreachable}
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe failed", "url", tgt.URL, "error", err)
		return Outcome{Target: tgt, Status: StatusUnreachable}
	}
	resp.Body.Close()

	return Outcome{Target: tgt, Status: Classify(resp.StatusCode), StatusCode: resp.StatusCode}
}
