package horizon

// Physical constants in SI units.
const (
	G    = 6.67430e-11     // gravitational constant, m^3 kg^-1 s^-2
	C    = 299792458.0     // speed of light, m/s
	Hbar = 1.054571817e-34 // reduced Planck constant, J s
	KB   = 1.380649e-23    // Boltzmann constant, J/K
)

// Reference masses in kilograms.
const (
	SolarMass        = 1.98892e30
	SagittariusAStar = 8.54e36 // ~4.3 million solar masses
	StellarMass      = 2.0e31  // ~10 solar masses
	IntermediateMass = 2.0e35  // ~100,000 solar masses
	Supermassive     = 2.0e39  // ~1 billion solar masses
)

// ClampFraction is the fraction of the horizon radius below which point
// gravity is smoothed away.
const ClampFraction = 0.1

// MassPresets maps preset names to reference masses.
var MassPresets = map[string]float64{
	"solar":        SolarMass,
	"sgr-a":        SagittariusAStar,
	"stellar":      StellarMass,
	"intermediate": IntermediateMass,
	"supermassive": Supermassive,
}
