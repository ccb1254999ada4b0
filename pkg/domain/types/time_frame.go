package types

// TimeFrame is the upstream-reported position of a sprint relative to
// now. The engine trusts this tag instead of recomputing it from the
// sprint dates.
type TimeFrame string

const (
	TimeFramePast    TimeFrame = "past"
	TimeFrameCurrent TimeFrame = "current"
	TimeFrameFuture  TimeFrame = "future"
)

// IsValid checks if the time frame is valid
func (f TimeFrame) IsValid() bool {
	switch f {
	case TimeFramePast, TimeFrameCurrent, TimeFrameFuture:
		return true
	default:
		return false
	}
}

// IsStarted reports whether the sprint has begun (past or current).
// Velocity and trend series only consider started sprints.
func (f TimeFrame) IsStarted() bool {
	return f == TimeFramePast || f == TimeFrameCurrent
}

// String returns the string representation of the time frame
func (f TimeFrame) String() string {
	return string(f)
}

// DecodeTimeFrame maps an upstream time frame string to a TimeFrame,
// defaulting to TimeFramePast for unrecognized values.
func DecodeTimeFrame(raw string) TimeFrame {
	f := TimeFrame(raw)
	if !f.IsValid() {
		return TimeFramePast
	}
	return f
}
