package body

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind classifies a body for display. It carries no behaviour of its own.
type Kind uint8

const (
	Stellar Kind = iota
	Planetary
	SmallBody
	Diffuse
	Debris
	Tracer
)

var kindNames = [...]string{
	Stellar:   "stellar",
	Planetary: "planetary",
	SmallBody: "small-body",
	Diffuse:   "diffuse",
	Debris:    "debris",
	Tracer:    "tracer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind accepts the canonical names plus the short aliases
// (star, planet, asteroid, gas-cloud, test-mass).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stellar", "star":
		return Stellar, nil
	case "planetary", "planet", "":
		return Planetary, nil
	case "small-body", "asteroid":
		return SmallBody, nil
	case "diffuse", "gas-cloud":
		return Diffuse, nil
	case "debris":
		return Debris, nil
	case "tracer", "test-mass":
		return Tracer, nil
	}
	return Planetary, fmt.Errorf("unknown body kind: %s", s)
}

func (k Kind) DefaultColor() mgl64.Vec4 {
	switch k {
	case Stellar:
		return mgl64.Vec4{1, 1, 0, 1}
	case Planetary:
		return mgl64.Vec4{1, 0, 0, 1}
	case SmallBody:
		return mgl64.Vec4{0.6, 0.6, 0.6, 1}
	case Diffuse:
		return mgl64.Vec4{0.5, 0.7, 1, 0.5}
	case Debris:
		return mgl64.Vec4{0.8, 0.5, 0.3, 1}
	default:
		return mgl64.Vec4{1, 1, 1, 1}
	}
}
