package nbody

// KineticEnergy sums ½mv² over active bodies.
func (s *Simulation) KineticEnergy() float64 {
	total := 0.0
	for _, b := range s.bodies {
		if b.Active() {
			total += b.KineticEnergy()
		}
	}
	return total
}

// PotentialEnergy sums -G·mi·mj/rij over active pairs and -G·M·mi/ri
// against the compact body. Coincident terms are skipped. The central term
// is not clamped.
func (s *Simulation) PotentialEnergy() float64 {
	total := 0.0
	center := s.central.Position()
	for i, a := range s.bodies {
		if !a.Active() {
			continue
		}
		if r := a.Position().Sub(center).Len(); r > 0 {
			total -= s.g * s.central.Mass() * a.Mass() / r
		}
		for _, b := range s.bodies[i+1:] {
			if !b.Active() {
				continue
			}
			if r := a.DistanceTo(b); r > 0 {
				total -= s.g * a.Mass() * b.Mass() / r
			}
		}
	}
	return total
}

func (s *Simulation) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}
