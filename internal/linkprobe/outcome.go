package linkprobe

// Status is the liveness classification of one probed target.
type Status string

const (
	// StatusWorking: the target answered with a 2xx.
	StatusWorking Status = "working"
	// StatusRedirected: the target answered with a 3xx. The redirect is
	// recorded, never followed.
	StatusRedirected Status = "redirected"
	// StatusBroken: the target answered with any other status.
	StatusBroken Status = "broken"
	// StatusUnreachable: no status was obtained (DNS, connect, TLS or
	// timeout failure). StatusCode is 0 in this case.
	StatusUnreachable Status = "unreachable"
)

// Outcome is the result of probing a single target. Every admitted
// target produces exactly one Outcome.
type Outcome struct {
	Target     Target `json:"target"`
	Status     Status `json:"status"`
	StatusCode int    `json:"status_code"`
}

// Classify maps a received HTTP status code to an outcome status.
// Transport failures never reach here; the prober folds those into
// StatusUnreachable directly.
func Classify(code int) Status {
	switch {
	case code >= 200 && code < 300:
		return StatusWorking
	case code >= 300 && code < 400:
		return StatusRedirected
	default:
		return StatusBroken
	}
}
