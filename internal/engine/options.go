package engine

import "time"

// Options configures an Engine. Zero fields take the defaults below.
type Options struct {
	HashMB          int           // transposition table size
	MaxDepth        int           // iterative deepening limit
	QuiescenceDepth int           // capture plies searched past the horizon
	MaxExtensions   int           // check extensions along one line, negative disables
	ThinkTime       time.Duration // Reply budget when none is given
	SliceBudget     time.Duration // run time between Yield calls

	// Yield, when set, is called at frame boundaries once SliceBudget has
	// elapsed since the last call, letting a cooperative host run.
	Yield func()

	// OnInfo is called after every completed depth.
	OnInfo func(SearchInfo)
}

// Default option values.
const (
	DefaultHashMB          = 64
	DefaultQuiescenceDepth = 6
	DefaultMaxExtensions   = 4
	DefaultThinkTime       = 1500 * time.Millisecond
	DefaultSliceBudget     = 5 * time.Millisecond
)

// DefaultOptions returns the options used for a zero Options value.
func DefaultOptions() Options {
	return Options{
		HashMB:          DefaultHashMB,
		MaxDepth:        MaxDepth,
		QuiescenceDepth: DefaultQuiescenceDepth,
		MaxExtensions:   DefaultMaxExtensions,
		ThinkTime:       DefaultThinkTime,
		SliceBudget:     DefaultSliceBudget,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HashMB == 0 {
		o.HashMB = d.HashMB
	}
	if o.MaxDepth <= 0 || o.MaxDepth > MaxDepth {
		o.MaxDepth = d.MaxDepth
	}
	if o.QuiescenceDepth <= 0 {
		o.QuiescenceDepth = d.QuiescenceDepth
	}
	switch {
	case o.MaxExtensions == 0:
		o.MaxExtensions = d.MaxExtensions
	case o.MaxExtensions < 0:
		o.MaxExtensions = 0
	}
	if o.ThinkTime <= 0 {
		o.ThinkTime = d.ThinkTime
	}
	if o.SliceBudget <= 0 {
		o.SliceBudget = d.SliceBudget
	}
	return o
}
