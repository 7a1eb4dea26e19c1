package segment

import "math/rand/v2"

// ValueRangeAction selects how a value range walks its interval.
type ValueRangeAction string

const (
	ActionIncrement ValueRangeAction = "increment"
	ActionDecrement ValueRangeAction = "decrement"
	ActionRandom    ValueRangeAction = "random"
)

// ValueRange is a stateful generator producing a new integer each time a
// field is serialized. It is driven by exactly one sequential caller per
// test run; concurrent use on the same instance is not safe.
type ValueRange struct {
	StartValue         int              `yaml:"start_value"`
	StepValue          int              `yaml:"step_value"`
	StopValue          int              `yaml:"stop_value"`
	Action             ValueRangeAction `yaml:"action"`
	RestartForEachPort bool             `yaml:"restart_for_each_port"`

	currentCount int
}

// Reset rewinds the generator to its start value.
func (r *ValueRange) Reset() {
	r.currentCount = 0
}

// CurrentCount returns the number of pulls since the last wraparound or
// Reset. It is never negative.
func (r *ValueRange) CurrentCount() int {
	return r.currentCount
}

// GetCurrentValue computes the next generator value and advances the
// counter. Increment wraps back to the start once the value passes the stop
// bound, decrement symmetrically. Random draws fresh on every call but still
// advances the counter for restart-for-each-port bookkeeping.
func (r *ValueRange) GetCurrentValue() int {
	var current int
	switch r.Action {
	case ActionIncrement:
		current = r.StartValue + r.currentCount*r.StepValue
		if current > r.StopValue {
			current = r.StartValue
			r.Reset()
		}
	case ActionDecrement:
		current = r.StartValue - r.currentCount*r.StepValue
		if current < r.StopValue {
			current = r.StartValue
			r.Reset()
		}
	default:
		lo, hi := r.StartValue, r.StopValue
		if lo > hi {
			lo, hi = hi, lo
		}
		current = lo + rand.IntN(hi-lo+1)
	}
	r.currentCount++
	return current
}
