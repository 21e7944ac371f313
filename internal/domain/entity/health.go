package entity

// HealthState classifies the outcome of a server health probe.
type HealthState int

const (
	// HealthHealthy means the server answered the probe successfully.
	HealthHealthy HealthState = iota
	// HealthOffline means the probe failed at the connectivity level:
	// connection refused, network unreachable, or no connectivity at all.
	HealthOffline
	// HealthError means the server answered with a failure, or the probe
	// failed for a reason other than missing connectivity.
	HealthError
)

// ServerHealthStatus is the result of a single health probe. It is never
// persisted; each probe or environment switch produces a fresh value.
type ServerHealthStatus struct {
	State HealthState
	// Detail carries the server-reported status for HealthHealthy and the
	// failure description for HealthError. Empty for HealthOffline.
	Detail string
}

// Healthy builds a status for a successful probe.
func Healthy(detail string) ServerHealthStatus {
	return ServerHealthStatus{State: HealthHealthy, Detail: detail}
}

// Offline builds a status for a connectivity-level failure.
func Offline() ServerHealthStatus {
	return ServerHealthStatus{State: HealthOffline}
}

// HealthErrorStatus builds a status for a server-side or unexpected failure.
func HealthErrorStatus(detail string) ServerHealthStatus {
	return ServerHealthStatus{State: HealthError, Detail: detail}
}

// IsHealthy reports whether the probe found the server healthy.
func (s ServerHealthStatus) IsHealthy() bool {
	return s.State == HealthHealthy
}

// DisplayText renders the status the way the client UI presents it.
func (s ServerHealthStatus) DisplayText() string {
	switch s.State {
	case HealthHealthy:
		return "Server: " + s.Detail
	case HealthOffline:
		return "Server: offline"
	default:
		return "Server: " + s.Detail
	}
}
