package types

// HealthStatus is the overall status tier of a project report.
type HealthStatus string

const (
	HealthStatusGreen  HealthStatus = "green"
	HealthStatusYellow HealthStatus = "yellow"
	HealthStatusRed    HealthStatus = "red"
)

// HealthStatusForProgress maps a progress percentage to a status tier:
// green at 75% and above, yellow at 50% and above, red otherwise.
func HealthStatusForProgress(percent int) HealthStatus {
	switch {
	case percent >= 75:
		return HealthStatusGreen
	case percent >= 50:
		return HealthStatusYellow
	default:
		return HealthStatusRed
	}
}

// String returns the string representation of the health status
func (s HealthStatus) String() string {
	return string(s)
}
