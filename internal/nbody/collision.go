package nbody

// resolveCollisions deactivates the lighter body of every touching pair.
// On equal mass the earlier body survives. Pairs already broken up by an
// earlier absorption in the same pass are skipped.
func (s *Simulation) resolveCollisions() {
	for i, a := range s.bodies {
		if !a.Active() {
			continue
		}
		for _, b := range s.bodies[i+1:] {
			if !b.Active() || !a.IsCollidingWith(b) {
				continue
			}
			survivor, absorbed := a, b
			if a.Mass() < b.Mass() {
				survivor, absorbed = b, a
			}
			absorbed.SetActive(false)
			s.absorbed++
			s.log.Info("collision detected", "survivor", survivor.Name, "absorbed", absorbed.Name)
			if !a.Active() {
				break
			}
		}
	}
}

// cull removes every inactive body and every body inside the horizon.
func (s *Simulation) cull() {
	kept := s.bodies[:0]
	for _, b := range s.bodies {
		switch {
		case !b.Active():
			s.log.V(1).Info("removing inactive body", "name", b.Name)
		case s.central.IsInsideHorizon(b.Position()):
			s.swallowed++
			s.log.Info("body crossed the event horizon", "name", b.Name)
		default:
			kept = append(kept, b)
			continue
		}
		delete(s.pending, b)
	}
	clear(s.bodies[len(kept):])
	s.bodies = kept
}
