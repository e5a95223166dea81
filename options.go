package warpsearch

import (
	"runtime"

	"github.com/hupe1980/warpsearch/dtw"
)

type options struct {
	constraint     dtw.Constraint
	parallel       bool
	numWorkers     int
	useLowerBounds bool
	logger         *Logger
	stats          StatsCollector
}

// Option configures Engine construction. The resulting configuration is
// immutable for the lifetime of the engine.
type Option func(*options)

// WithConstraint sets the global constraint applied to every DTW
// computation the engine performs: dtw.None(), dtw.Band(radius) or
// dtw.Parallelogram(slope). The envelope lower bound automatically uses
// the matching band radius so pruning stays sound. Default: dtw.None().
func WithConstraint(c dtw.Constraint) Option {
	return func(o *options) {
		o.constraint = c
	}
}

// WithParallel enables data-parallel execution: dataset-partitioned
// k-NN and concurrent batch queries. Parallel mode returns the exact
// result set of sequential mode; per-worker pruning thresholds are local,
// so it performs strictly less pruning on the same inputs. Default: off.
func WithParallel(enabled bool) Option {
	return func(o *options) {
		o.parallel = enabled
	}
}

// WithNumWorkers sets the worker count for parallel execution.
// Values < 1 select runtime.GOMAXPROCS(0). Workers are spawned per search
// call and torn down when the call returns; there is no persistent pool.
func WithNumWorkers(n int) Option {
	return func(o *options) {
		o.numWorkers = n
	}
}

// WithLowerBounds toggles the pruning cascade. Disabling it forces full
// DTW evaluation of every candidate; results are identical, only slower.
// This is an escape hatch for validation and testing. Default: on.
func WithLowerBounds(enabled bool) Option {
	return func(o *options) {
		o.useLowerBounds = enabled
	}
}

// WithLogger sets the structured logger. If nil is passed, logging is
// disabled. Default: NoopLogger().
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithStatsCollector sets the collector receiving per-call search
// statistics. If nil is passed, collection is disabled.
// Default: NoopStatsCollector.
func WithStatsCollector(c StatsCollector) Option {
	return func(o *options) {
		if c == nil {
			c = NoopStatsCollector{}
		}
		o.stats = c
	}
}

func defaultOptions() options {
	return options{
		constraint:     dtw.None(),
		parallel:       false,
		numWorkers:     runtime.GOMAXPROCS(0),
		useLowerBounds: true,
		logger:         NoopLogger(),
		stats:          NoopStatsCollector{},
	}
}
