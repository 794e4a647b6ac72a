package engine

import "time"

// TimeManager tracks the budget of one Reply: no new depth starts past the
// optimum time and a running depth is abandoned at the maximum time.
type TimeManager struct {
	optimumTime time.Duration // Soft limit, checked between depths
	maximumTime time.Duration // Hard limit, checked inside a depth
	startTime   time.Time     // When search started
}

// NewTimeManager starts the clock for a search of the given think time.
func NewTimeManager(think time.Duration) *TimeManager {
	tm := &TimeManager{}
	tm.Init(think)
	return tm
}

// Init restarts the clock.
func (tm *TimeManager) Init(think time.Duration) {
	tm.startTime = time.Now()
	tm.maximumTime = think
	tm.optimumTime = time.Duration(float64(think) * softLimit)
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// Deadline is the wall-clock time of the hard limit.
func (tm *TimeManager) Deadline() time.Time {
	return tm.startTime.Add(tm.maximumTime)
}

// OptimumTime returns the soft limit.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the maximum time allowed.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// ShouldStop returns true once the hard limit has passed.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.maximumTime
}

// PastOptimum returns true if we've exceeded the optimum time.
func (tm *TimeManager) PastOptimum() bool {
	return tm.Elapsed() > tm.optimumTime
}
