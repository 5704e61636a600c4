package nbody

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	g "github.com/onsi/ginkgo/v2"
	o "github.com/onsi/gomega"

	"github.com/san-kum/horizon/internal/body"
	"github.com/san-kum/horizon/internal/dynamo"
	"github.com/san-kum/horizon/internal/horizon"
)

func sagittarius() *horizon.CompactBody {
	cb, err := horizon.New("Sagittarius A*", mgl64.Vec3{}, horizon.SagittariusAStar)
	o.ExpectWithOffset(1, err).NotTo(o.HaveOccurred())
	return cb
}

func star(name string, pos mgl64.Vec3, mass float64) *body.Body {
	return body.New(name, body.Stellar, pos, mgl64.Vec3{}, mass, 1e6)
}

func mustAdd(s *Simulation, bodies ...*body.Body) {
	for _, b := range bodies {
		o.ExpectWithOffset(1, s.Add(b)).To(o.Succeed())
	}
}

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

var _ = g.Describe("Simulation", func() {
	var (
		central *horizon.CompactBody
		sim     *Simulation
	)

	g.BeforeEach(func() {
		central = sagittarius()
		sim = New(central, WithGravity(true), WithMethod(FirstOrder))
	})

	g.Describe("construction", func() {
		g.It("defaults to gravity off and the fourth-order scheme", func() {
			s := New(central)
			o.Expect(s.GravityEnabled()).To(o.BeFalse())
			o.Expect(s.Method()).To(o.Equal(FourthOrder))
			o.Expect(s.GravitationalConstant()).To(o.Equal(horizon.G))
			o.Expect(s.TimeStep()).To(o.Equal(DefaultTimeStep))
			o.Expect(s.Len()).To(o.BeZero())
		})

		g.It("normalizes an unknown method", func() {
			s := New(central, WithMethod(Method(42)))
			o.Expect(s.Method()).To(o.Equal(FourthOrder))
		})

		g.It("ignores non-positive overrides", func() {
			s := New(central, WithGravitationalConstant(-1), WithTimeStep(0))
			o.Expect(s.GravitationalConstant()).To(o.Equal(horizon.G))
			o.Expect(s.TimeStep()).To(o.Equal(DefaultTimeStep))
		})
	})

	g.Describe("capacity", func() {
		g.It("rejects the seventeenth body without changing the collection", func() {
			for i := 0; i < MaxBodies; i++ {
				mustAdd(sim, star("s", mgl64.Vec3{4e11 + float64(i)*1e10, 0, 0}, horizon.SolarMass))
			}
			before := sim.Bodies()

			err := sim.Add(star("extra", mgl64.Vec3{9e11, 0, 0}, horizon.SolarMass))

			o.Expect(err).To(o.HaveOccurred())
			o.Expect(errors.Is(err, ErrCapacity)).To(o.BeTrue())
			o.Expect(errors.Is(err, dynamo.ErrCapacity)).To(o.BeTrue())
			var simErr *dynamo.SimulationError
			o.Expect(errors.As(err, &simErr)).To(o.BeTrue())
			o.Expect(sim.Len()).To(o.Equal(MaxBodies))
			o.Expect(sim.Bodies()).To(o.Equal(before))
		})

		g.It("rejects a nil body as a recoverable error", func() {
			mustAdd(sim, star("a", mgl64.Vec3{4e11, 0, 0}, 1))

			err := sim.Add(nil)

			o.Expect(errors.Is(err, ErrNilBody)).To(o.BeTrue())
			o.Expect(errors.Is(err, dynamo.ErrInvalidState)).To(o.BeTrue())
			var simErr *dynamo.SimulationError
			o.Expect(errors.As(err, &simErr)).To(o.BeTrue())
			o.Expect(sim.Len()).To(o.Equal(1))
			o.Expect(func() { sim.Step(1) }).NotTo(o.Panic())
		})
	})

	g.Describe("removal", func() {
		g.It("treats out-of-range indices as no-ops", func() {
			mustAdd(sim, star("a", mgl64.Vec3{4e11, 0, 0}, 1))
			o.Expect(sim.Remove(-1)).To(o.BeFalse())
			o.Expect(sim.Remove(1)).To(o.BeFalse())
			o.Expect(sim.Len()).To(o.Equal(1))
		})

		g.It("removes by index and clears", func() {
			a := star("a", mgl64.Vec3{4e11, 0, 0}, 1)
			b := star("b", mgl64.Vec3{5e11, 0, 0}, 1)
			c := star("c", mgl64.Vec3{6e11, 0, 0}, 1)
			mustAdd(sim, a, b, c)

			o.Expect(sim.Remove(1)).To(o.BeTrue())
			o.Expect(sim.Bodies()).To(o.Equal([]*body.Body{a, c}))

			sim.Clear()
			o.Expect(sim.Len()).To(o.BeZero())
		})
	})

	g.Describe("force accumulation", func() {
		g.It("applies equal and opposite pair forces", func() {
			a := star("a", mgl64.Vec3{4e11, 1e10, -3e10}, horizon.SolarMass)
			b := star("b", mgl64.Vec3{-2e11, 5e11, 7e10}, 3*horizon.SolarMass)
			mustAdd(sim, a, b)

			sim.accumulatePairForces()

			o.Expect(a.Force()).NotTo(o.Equal(mgl64.Vec3{}))
			o.Expect(a.Force()).To(o.Equal(b.Force().Mul(-1)))
		})

		g.It("keeps the net pair force of many bodies near zero", func() {
			mustAdd(sim,
				star("a", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass),
				star("b", mgl64.Vec3{0, 4e11, 0}, 2*horizon.SolarMass),
				star("c", mgl64.Vec3{0, 0, 4e11}, 5*horizon.SolarMass),
				star("d", mgl64.Vec3{-3e11, 1e11, 2e11}, 0.5*horizon.SolarMass),
			)
			sim.accumulatePairForces()

			var net mgl64.Vec3
			largest := 0.0
			for _, b := range sim.Bodies() {
				net = net.Add(b.Force())
				largest = math.Max(largest, b.Force().Len())
			}
			o.Expect(net.Len()).To(o.BeNumerically("<", largest*1e-12))
		})

		g.It("skips coincident and inactive pairs", func() {
			a := star("a", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
			b := star("b", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
			c := star("c", mgl64.Vec3{5e11, 0, 0}, horizon.SolarMass)
			c.SetActive(false)
			mustAdd(sim, a, b, c)

			sim.accumulatePairForces()

			o.Expect(a.Force()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(b.Force()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(c.Force()).To(o.Equal(mgl64.Vec3{}))
		})

		g.It("gives a body on the compact body zero central force but keeps pair forces", func() {
			inside := star("inside", mgl64.Vec3{}, horizon.SolarMass)
			other := star("other", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
			mustAdd(sim, inside, other)

			sim.accumulateCentralForces()
			o.Expect(inside.Force()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(other.Force().X()).To(o.BeNumerically("<", 0))
			other.ResetForce()

			sim.accumulatePairForces()
			o.Expect(inside.Force().Len()).To(o.BeNumerically(">", 0))
			o.Expect(inside.Force().X()).To(o.BeNumerically(">", 0))
		})

		g.It("suppresses the central pull at the clamp radius", func() {
			edge := star("edge", mgl64.Vec3{central.ClampRadius(), 0, 0}, horizon.SolarMass)
			beyond := star("beyond", mgl64.Vec3{0, 2 * central.ClampRadius(), 0}, horizon.SolarMass)
			mustAdd(sim, edge, beyond)

			sim.accumulateCentralForces()

			o.Expect(edge.Force()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(beyond.Force().Y()).To(o.BeNumerically("<", 0))
		})

		g.It("reports accelerations without touching force buffers", func() {
			a := star("a", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
			mustAdd(sim, a)

			acc := sim.Acceleration(0)
			want := horizon.G * horizon.SagittariusAStar / (4e11 * 4e11)
			o.Expect(acc.X()).To(o.BeNumerically("~", -want, want*1e-12))
			o.Expect(a.Force()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(sim.Acceleration(3)).To(o.Equal(mgl64.Vec3{}))
		})
	})

	g.Describe("stepping", func() {
		g.DescribeTable("ignores non-positive time steps",
			func(dt float64) {
				a := body.New("a", body.Stellar, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{1, 2, 3}, horizon.SolarMass, 1e6)
				mustAdd(sim, a)

				sim.Step(dt)

				o.Expect(sim.Elapsed()).To(o.BeZero())
				o.Expect(sim.Steps()).To(o.BeZero())
				o.Expect(a.Position()).To(o.Equal(mgl64.Vec3{4e11, 0, 0}))
				o.Expect(a.Velocity()).To(o.Equal(mgl64.Vec3{1, 2, 3}))
			},
			g.Entry("zero", 0.0),
			g.Entry("negative", -1.0/60),
			g.Entry("NaN", math.NaN()),
		)

		g.It("pulls a resting star toward the origin with the Newtonian estimate", func() {
			s := New(central, WithGravity(true), WithMethod(FirstOrder))
			b := body.New("Test Star 1", body.Stellar, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{}, 1.98892e30, 4e10)
			mustAdd(s, b)

			s.Step(1.0 / 60)

			want := horizon.G * 8.54e36 / (4e11 * 4e11) * (1.0 / 60)
			v := b.Velocity()
			o.Expect(v.X()).To(o.BeNumerically("~", -want, want*1e-9))
			o.Expect(v.Y()).To(o.BeZero())
			o.Expect(v.Z()).To(o.BeZero())
			o.Expect(s.Elapsed()).To(o.BeNumerically("~", 1.0/60, 1e-15))
			o.Expect(s.Steps()).To(o.Equal(1))
		})

		g.DescribeTable("agrees with the Newtonian estimate for every scheme",
			func(m Method) {
				s := New(central, WithGravity(true), WithMethod(m))
				b := body.New("Test Star 1", body.Stellar, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{}, 1.98892e30, 4e10)
				mustAdd(s, b)

				s.Step(1.0 / 60)

				want := horizon.G * 8.54e36 / (4e11 * 4e11) * (1.0 / 60)
				o.Expect(b.Velocity().X()).To(o.BeNumerically("~", -want, want*1e-6))
				o.Expect(b.Force()).To(o.Equal(mgl64.Vec3{}))
				o.Expect(b.Trail().Len()).To(o.Equal(2))
			},
			g.Entry("first-order", FirstOrder),
			g.Entry("leapfrog", Leapfrog),
			g.Entry("fourth-order", FourthOrder),
		)

		g.DescribeTable("never changes the velocity of a massless tracer",
			func(m Method) {
				s := New(central, WithGravity(true), WithMethod(m))
				tracer := body.New("tracer", body.Tracer, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{0, 1e5, 0}, 0, 1)
				heavy := star("heavy", mgl64.Vec3{4.5e11, 0, 0}, 1e35)
				mustAdd(s, tracer, heavy)

				for i := 0; i < 200; i++ {
					s.Step(1)
				}
				o.Expect(tracer.Velocity()).To(o.Equal(mgl64.Vec3{0, 1e5, 0}))
			},
			g.Entry("first-order", FirstOrder),
			g.Entry("leapfrog", Leapfrog),
			g.Entry("fourth-order", FourthOrder),
		)

		g.It("moves bodies at constant velocity with gravity disabled", func() {
			s := New(central)
			b := body.New("drifter", body.SmallBody, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{0, 10, 0}, horizon.SolarMass, 1)
			mustAdd(s, b)

			for i := 0; i < 10; i++ {
				s.Step(1)
			}
			o.Expect(b.Velocity()).To(o.Equal(mgl64.Vec3{0, 10, 0}))
			o.Expect(b.Position().Y()).To(o.BeNumerically("~", 100, 1e-9))
		})

		g.It("notifies observers with a frame after each step", func() {
			var frames []Frame
			s := New(central, WithObserver(ObserverFunc(func(f Frame) { frames = append(frames, f) })))
			mustAdd(s, star("a", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass))

			s.Step(1)
			s.Step(1)
			s.Step(0)

			o.Expect(frames).To(o.HaveLen(2))
			o.Expect(frames[1].Step).To(o.Equal(2))
			o.Expect(frames[1].Time).To(o.Equal(2.0))
			o.Expect(frames[1].Bodies).To(o.HaveLen(1))
		})
	})

	g.Describe("collisions", func() {
		g.It("deactivates exactly the lighter body and leaves the survivor untouched", func() {
			light := body.New("light", body.Planetary, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{1, 0, 0}, 1e24, 4e10)
			heavy := body.New("heavy", body.Stellar, mgl64.Vec3{4.5e11, 0, 0}, mgl64.Vec3{0, 2, 0}, 1e30, 4e10)
			mustAdd(sim, light, heavy)

			sim.resolveCollisions()

			o.Expect(light.Active()).To(o.BeFalse())
			o.Expect(heavy.Active()).To(o.BeTrue())
			o.Expect(heavy.Position()).To(o.Equal(mgl64.Vec3{4.5e11, 0, 0}))
			o.Expect(heavy.Velocity()).To(o.Equal(mgl64.Vec3{0, 2, 0}))
			o.Expect(sim.Absorbed()).To(o.Equal(1))
		})

		g.It("lets the first body win on equal mass", func() {
			first := star("first", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
			second := star("second", mgl64.Vec3{4e11 + 1e6, 0, 0}, horizon.SolarMass)
			mustAdd(sim, first, second)

			sim.resolveCollisions()

			o.Expect(first.Active()).To(o.BeTrue())
			o.Expect(second.Active()).To(o.BeFalse())
		})

		g.It("removes the absorbed body on the next step", func() {
			light := body.New("light", body.Planetary, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{}, 1e24, 4e10)
			heavy := body.New("heavy", body.Stellar, mgl64.Vec3{4.5e11, 0, 0}, mgl64.Vec3{}, 1e30, 4e10)
			mustAdd(sim, light, heavy)

			sim.Step(1.0 / 60)

			o.Expect(sim.Bodies()).To(o.Equal([]*body.Body{heavy}))
		})

		g.It("does not resolve collisions while gravity is disabled", func() {
			s := New(central)
			mustAdd(s,
				star("a", mgl64.Vec3{4e11, 0, 0}, 1),
				star("b", mgl64.Vec3{4e11, 0, 0}, 2),
			)
			s.Step(1)
			o.Expect(s.Len()).To(o.Equal(2))
		})
	})

	g.Describe("horizon removal", func() {
		g.DescribeTable("drops bodies inside the horizon regardless of mass or gravity",
			func(mass float64, gravity bool) {
				s := New(central, WithGravity(gravity))
				inside := body.New("inside", body.Debris, mgl64.Vec3{0.5 * central.HorizonRadius(), 0, 0}, mgl64.Vec3{}, mass, 1)
				onEdge := body.New("edge", body.Debris, mgl64.Vec3{0, 0, central.HorizonRadius()}, mgl64.Vec3{}, mass, 1)
				outside := star("outside", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
				mustAdd(s, inside, onEdge, outside)

				s.Step(1.0 / 60)

				o.Expect(s.Bodies()).To(o.Equal([]*body.Body{outside}))
				o.Expect(s.Swallowed()).To(o.Equal(2))
			},
			g.Entry("massive, gravity on", horizon.SolarMass, true),
			g.Entry("massive, gravity off", horizon.SolarMass, false),
			g.Entry("massless, gravity on", 0.0, true),
			g.Entry("massless, gravity off", 0.0, false),
		)

		g.It("drops a body sitting on the compact body", func() {
			mustAdd(sim,
				star("center", mgl64.Vec3{}, horizon.SolarMass),
				star("other", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass),
			)
			sim.Step(1.0 / 60)
			o.Expect(sim.Len()).To(o.Equal(1))
			o.Expect(sim.Bodies()[0].Name).To(o.Equal("other"))
		})

		g.It("culls inactive bodies even with gravity disabled", func() {
			s := New(central)
			dead := star("dead", mgl64.Vec3{4e11, 0, 0}, 1)
			dead.SetActive(false)
			mustAdd(s, dead)
			s.Step(1)
			o.Expect(s.Len()).To(o.BeZero())
		})
	})

	g.Describe("energy", func() {
		g.It("is purely potential at rest with gravity disabled", func() {
			s := New(central)
			a := star("a", mgl64.Vec3{4e11, 0, 0}, horizon.SolarMass)
			b := star("b", mgl64.Vec3{0, 0, 4e11}, 5.972e24)
			mustAdd(s, a, b)

			gc, m := s.GravitationalConstant(), central.Mass()
			want := 0.0
			want -= gc * m * a.Mass() / 4e11
			want -= gc * a.Mass() * b.Mass() / a.DistanceTo(b)
			want -= gc * m * b.Mass() / 4e11

			o.Expect(s.KineticEnergy()).To(o.BeZero())
			o.Expect(s.PotentialEnergy()).To(o.Equal(want))
			o.Expect(s.TotalEnergy()).To(o.Equal(want))
		})

		g.It("skips coincident bodies", func() {
			s := New(central)
			mustAdd(s,
				star("a", mgl64.Vec3{4e11, 0, 0}, 1),
				star("b", mgl64.Vec3{4e11, 0, 0}, 1),
			)
			o.Expect(math.IsInf(s.PotentialEnergy(), 0)).To(o.BeFalse())
		})

		g.It("ignores inactive bodies", func() {
			s := New(central)
			a := body.New("a", body.Stellar, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{10, 0, 0}, 2, 1)
			a.SetActive(false)
			mustAdd(s, a)
			o.Expect(s.TotalEnergy()).To(o.BeZero())
		})
	})

	g.Describe("higher-order schemes", func() {
		orbitError := func(m Method) float64 {
			s := New(central, WithGravity(true), WithMethod(m))
			b := body.New("orbiter", body.Planetary, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{}, 1e24, 1e6)
			b.SetCircularOrbit(s.GravitationalConstant(), central.Mass(), central.Position())
			mustAdd(s, b)

			worst := 0.0
			for i := 0; i < 1000; i++ {
				s.Step(60)
				worst = math.Max(worst, relErr(b.Position().Len(), 4e11))
			}
			return worst
		}

		g.It("keeps a circular orbit tight with fourth-order", func() {
			o.Expect(orbitError(FourthOrder)).To(o.BeNumerically("<", 1e-6))
		})

		g.It("keeps a circular orbit bounded with leapfrog", func() {
			o.Expect(orbitError(Leapfrog)).To(o.BeNumerically("<", 1e-3))
		})
	})

	g.Describe("events", func() {
		g.It("toggles gravity", func() {
			s := New(central)
			o.Expect(s.HandleEvent(ToggleGravity)).To(o.BeTrue())
			o.Expect(s.GravityEnabled()).To(o.BeTrue())
			s.HandleEvent(ToggleGravity)
			o.Expect(s.GravityEnabled()).To(o.BeFalse())
		})

		g.DescribeTable("selects the integration method",
			func(e Event, want Method) {
				s := New(central, WithMethod(FirstOrder))
				if want == FirstOrder {
					s.SetMethod(FourthOrder)
				}
				o.Expect(s.HandleEvent(e)).To(o.BeTrue())
				o.Expect(s.Method()).To(o.Equal(want))
			},
			g.Entry("first-order", SelectFirstOrder, FirstOrder),
			g.Entry("leapfrog", SelectLeapfrog, Leapfrog),
			g.Entry("fourth-order", SelectFourthOrder, FourthOrder),
		)

		g.It("resets the clock and brings bodies to rest", func() {
			a := body.New("a", body.Stellar, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{5, 0, 0}, horizon.SolarMass, 1)
			mustAdd(sim, a)
			sim.Step(1)
			sim.Step(1)

			o.Expect(sim.HandleEvent(ResetSimulation)).To(o.BeTrue())

			o.Expect(sim.Elapsed()).To(o.BeZero())
			o.Expect(sim.Steps()).To(o.BeZero())
			o.Expect(a.Velocity()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(a.Force()).To(o.Equal(mgl64.Vec3{}))
			o.Expect(sim.Len()).To(o.Equal(1))
		})

		g.It("rejects unknown events", func() {
			o.Expect(sim.HandleEvent(Event(99))).To(o.BeFalse())
		})
	})

	g.Describe("frames", func() {
		g.It("packs the uniform block", func() {
			s := New(central)
			a := body.New("a", body.Stellar, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{}, horizon.SolarMass, 4e10)
			b := body.New("b", body.Planetary, mgl64.Vec3{0, 0, 4e11}, mgl64.Vec3{}, 5.972e24, 4e10)
			mustAdd(s, a, b)

			f := s.Frame()
			u := f.UniformBlock()

			o.Expect(f.Central.HorizonRadius).To(o.Equal(central.HorizonRadius()))
			o.Expect(f.Central.ISCORadius).To(o.Equal(3 * central.HorizonRadius()))
			o.Expect(u.NumObjects).To(o.Equal(int32(2)))
			o.Expect(u.PosRadius[0]).To(o.Equal([4]float32{4e11, 0, 0, 4e10}))
			o.Expect(u.Color[0]).To(o.Equal([4]float32{1, 1, 0, 1}))
			o.Expect(u.Color[1]).To(o.Equal([4]float32{1, 0, 0, 1}))
			o.Expect(u.Mass[1]).To(o.Equal(float32(5.972e24)))
			o.Expect(u.PosRadius[2]).To(o.Equal([4]float32{}))
		})

		g.It("sums momentum of active bodies", func() {
			f := Frame{Bodies: []BodySnapshot{
				{Mass: 2, Velocity: mgl64.Vec3{1, 0, 0}, Active: true},
				{Mass: 3, Velocity: mgl64.Vec3{0, 1, 0}, Active: true},
				{Mass: 100, Velocity: mgl64.Vec3{1, 1, 1}, Active: false},
			}}
			o.Expect(f.Momentum()).To(o.Equal(mgl64.Vec3{2, 3, 0}))
		})
	})
})

var _ = g.DescribeTable("ParseMethod",
	func(in string, want Method) {
		o.Expect(ParseMethod(in)).To(o.Equal(want))
	},
	g.Entry("first-order", "first-order", FirstOrder),
	g.Entry("euler alias", "Euler", FirstOrder),
	g.Entry("leapfrog", "LEAPFROG", Leapfrog),
	g.Entry("fourth-order", "Fourth-Order", FourthOrder),
	g.Entry("rk4 alias", "rk4", FourthOrder),
	g.Entry("unknown", "verlet-ish", FourthOrder),
	g.Entry("empty", "", FourthOrder),
)

var _ = g.Describe("Method", func() {
	g.It("reports order and name", func() {
		o.Expect(FirstOrder.Order()).To(o.Equal(1))
		o.Expect(Leapfrog.Order()).To(o.Equal(2))
		o.Expect(FourthOrder.Order()).To(o.Equal(4))
		for _, m := range []Method{FirstOrder, Leapfrog, FourthOrder} {
			o.Expect(ParseMethod(m.String())).To(o.Equal(m))
		}
	})
})
