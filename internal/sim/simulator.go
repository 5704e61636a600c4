package sim

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/metrics"
	"github.com/san-kum/horizon/internal/nbody"
	"github.com/san-kum/horizon/internal/storage"
)

// Result is one finished headless run.
type Result struct {
	Name     string
	Start    nbody.Frame
	End      nbody.Frame
	Metrics  map[string]float64
	Recorder *storage.Recorder
	Elapsed  time.Duration
}

// Runner drives simulations built from a config for a fixed number of
// steps, without a view attached.
type Runner struct {
	log   logr.Logger
	every int
}

// New returns a runner recording one frame in every.
func New(log logr.Logger, every int) *Runner {
	return &Runner{log: log, every: every}
}

func (r *Runner) Run(ctx context.Context, name string, cfg *config.Config) (*Result, error) {
	steps := cfg.Steps()
	if steps <= 0 {
		return nil, fmt.Errorf("run %s: duration %g covers no steps of %g", name, cfg.Duration, cfg.Physics.TimeStep)
	}
	s, err := cfg.Build(r.log)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Name:     name,
		Start:    s.Frame(),
		Recorder: storage.NewRecorder(r.every),
	}
	set := metrics.Default(EscapeRadius(result.Start))
	s.AddObserver(set)
	s.AddObserver(result.Recorder)
	result.Recorder.Record(result.Start)

	r.log.V(1).Info("running", "name", name, "steps", steps, "method", s.Method().String())
	begin := time.Now()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		s.Tick()
	}
	result.Elapsed = time.Since(begin)
	result.End = s.Frame()
	result.Metrics = set.Values()
	return result, nil
}

// Compare runs cfg once per method, concurrently. Results are in the order
// of methods.
func (r *Runner) Compare(ctx context.Context, name string, cfg *config.Config, methods []nbody.Method) ([]*Result, error) {
	results := make([]*Result, len(methods))
	errs := make([]error, len(methods))

	var wg sync.WaitGroup
	for i, m := range methods {
		wg.Add(1)
		go func(idx int, m nbody.Method) {
			defer wg.Done()

			cfgCopy := *cfg
			cfgCopy.Physics.IntegrationMethod = m.String()
			results[idx], errs[idx] = r.Run(ctx, name+"/"+m.String(), &cfgCopy)
		}(i, m)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// EscapeRadius is the distance beyond which a body counts as unbound for
// the stability metric.
func EscapeRadius(f nbody.Frame) float64 {
	r := 100 * f.Central.ISCORadius
	for _, b := range f.Bodies {
		r = math.Max(r, 10*b.Position.Sub(f.Central.Position).Len())
	}
	return r
}
