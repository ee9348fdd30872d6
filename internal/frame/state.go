package frame

// Phase is the load phase of the current frame generation.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// LoadState is the load outcome of the current generation.
type LoadState struct {
	Phase   Phase
	Message string // set when Errored
	Cause   error  // underlying failure, for logs and details
}
