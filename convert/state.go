package convert

// State is the lifecycle position of one job.
type State int

const (
	Unopened State = iota
	Opened
	HeaderReported
	Converting
	Completed
	Interrupted
	Failed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Opened:
		return "opened"
	case HeaderReported:
		return "header-reported"
	case Converting:
		return "converting"
	case Completed:
		return "completed"
	case Interrupted:
		return "interrupted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
