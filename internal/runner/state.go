package runner

import "fmt"

// State is the run loop's position in its cycle.
type State int

const (
	// Idle means no run is active and the queue is empty.
	Idle State = iota
	// Launching means the head job's config is being written or the
	// simulator is running.
	Launching
	// Archiving means the simulator finished and its artifacts are being
	// moved into a result directory.
	Archiving
)

var stateNames = [...]string{"idle", "launching", "archiving"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
