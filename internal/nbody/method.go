package nbody

import "strings"

// Method selects the integration scheme used in Step.
type Method int

const (
	FirstOrder Method = iota
	Leapfrog
	FourthOrder
)

func (m Method) String() string {
	switch m {
	case FirstOrder:
		return "first-order"
	case Leapfrog:
		return "leapfrog"
	default:
		return "fourth-order"
	}
}

func (m Method) normalize() Method {
	if m == FirstOrder || m == Leapfrog {
		return m
	}
	return FourthOrder
}

// Order is the global order of accuracy of the scheme.
func (m Method) Order() int {
	switch m {
	case FirstOrder:
		return 1
	case Leapfrog:
		return 2
	default:
		return 4
	}
}

// ParseMethod is case-insensitive. Unrecognized names select FourthOrder.
func ParseMethod(s string) Method {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first-order", "euler":
		return FirstOrder
	case "leapfrog":
		return Leapfrog
	default:
		return FourthOrder
	}
}
