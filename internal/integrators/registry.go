package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/horizon/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"first-order":  func() dynamo.Integrator { return NewEuler() },
	"leapfrog":     func() dynamo.Integrator { return NewLeapfrog() },
	"fourth-order": func() dynamo.Integrator { return NewRK4() },
}

// Get returns a fresh integrator for one of the names reported by Names.
func Get(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
