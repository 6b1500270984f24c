package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solar"

// Collectors records frame and transition activity on its own registry.
type Collectors struct {
	registry     *prometheus.Registry
	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	rejected     prometheus.Counter
	started      *prometheus.CounterVec
	ignored      *prometheus.CounterVec
	completed    *prometheus.CounterVec
	progress     prometheus.Gauge
	orbiters     prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames driven through the scene update.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Accepted frame delta times.",
			Buckets:   []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25},
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_deltas_total",
			Help:      "Frame deltas that were negative or not finite and treated as zero.",
		}),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_started_total",
			Help:      "Day/night transitions started, by direction.",
		}, []string{"direction"}),
		ignored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_ignored_total",
			Help:      "Day/night requests dropped, by reason.",
		}, []string{"reason"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_completed_total",
			Help:      "Day/night transitions finished, by resting phase.",
		}, []string{"phase"}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_progress",
			Help:      "Last sampled eased transition value.",
		}),
		orbiters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orbiters",
			Help:      "Orbiters updated per frame.",
		}),
	}
	c.registry.MustRegister(c.frames, c.frameSeconds, c.rejected, c.started, c.ignored, c.completed, c.progress, c.orbiters)
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collectors) Registry() *prometheus.Registry { return c.registry }

// ObserveFrame counts a frame. Only accepted deltas reach the frame time histogram.
func (c *Collectors) ObserveFrame(dt float64, accepted bool, orbiters int) {
	c.frames.Inc()
	if accepted {
		c.frameSeconds.Observe(dt)
	}
	c.orbiters.Set(float64(orbiters))
}

func (c *Collectors) RejectDelta() { c.rejected.Inc() }

func (c *Collectors) TransitionStarted(direction string) {
	c.started.WithLabelValues(direction).Inc()
}

func (c *Collectors) TransitionIgnored(reason string) {
	c.ignored.WithLabelValues(reason).Inc()
}

func (c *Collectors) TransitionCompleted(phase string) {
	c.completed.WithLabelValues(phase).Inc()
}

func (c *Collectors) TransitionSampled(t float64) { c.progress.Set(t) }

// Handler serves the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collectors) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
