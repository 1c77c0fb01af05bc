package notify

type Status int

const (
	StatusSkipped Status = iota
	StatusDelivered
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusDelivered:
		return "delivered"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dispatch. Err is set only for StatusFailed.
type Result struct {
	Status Status
	Err    error
}
