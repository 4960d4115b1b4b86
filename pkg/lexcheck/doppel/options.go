package doppel

// DefaultProgressInterval is how many expressions pass between progress reports.
const DefaultProgressInterval = 10000

// ProgressFunc receives the number of expressions processed so far.
type ProgressFunc func(processed int)

// Options configures a Finder.
type Options struct {
	// ProgressInterval is the number of expressions between Progress calls.
	ProgressInterval int
	// Progress is optional telemetry; nil disables it.
	Progress ProgressFunc
	// Workers splits the outer loop over expressions; 1 runs inline.
	Workers int
}

// Option is a functional option for NewFinder.
type Option func(*Options)

// DefaultOptions returns single-threaded options without progress reporting.
func DefaultOptions() Options {
	return Options{
		ProgressInterval: DefaultProgressInterval,
		Workers:          1,
	}
}

// WithProgress reports every interval processed expressions to fn.
// A non-positive interval keeps the default.
func WithProgress(interval int, fn ProgressFunc) Option {
	return func(o *Options) {
		if interval > 0 {
			o.ProgressInterval = interval
		}
		o.Progress = fn
	}
}

// WithWorkers scans the corpus with n goroutines. Output order is unchanged.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.Workers = n
	}
}
