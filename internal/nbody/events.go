package nbody

import "fmt"

// Event is a discrete control input.
type Event int

const (
	ToggleGravity Event = iota
	SelectFirstOrder
	SelectLeapfrog
	SelectFourthOrder
	ResetSimulation
)

func (e Event) String() string {
	switch e {
	case ToggleGravity:
		return "toggle-gravity"
	case SelectFirstOrder:
		return "select-first-order"
	case SelectLeapfrog:
		return "select-leapfrog"
	case SelectFourthOrder:
		return "select-fourth-order"
	case ResetSimulation:
		return "reset"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// HandleEvent applies e and reports whether it was recognized.
func (s *Simulation) HandleEvent(e Event) bool {
	switch e {
	case ToggleGravity:
		s.ToggleGravity()
	case SelectFirstOrder:
		s.SetMethod(FirstOrder)
	case SelectLeapfrog:
		s.SetMethod(Leapfrog)
	case SelectFourthOrder:
		s.SetMethod(FourthOrder)
	case ResetSimulation:
		s.Reset()
	default:
		s.log.V(1).Info("ignoring unknown event", "event", e.String())
		return false
	}
	return true
}
