package session_test

import (
	"bytes"
	"errors"
	"log"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/session"
	"github.com/san-kum/sirsim/internal/sim"
)

type seriesRecorder struct {
	calls  int
	xs     []float64
	series []session.Series
	err    error
}

func (r *seriesRecorder) DisplaySeries(xs []float64, series []session.Series) error {
	r.calls++
	r.xs, r.series = xs, series
	return r.err
}

type curveRecorder struct {
	points  []session.Point3
	markers []session.Marker
}

func (r *curveRecorder) DisplayCurve3D(points []session.Point3, markers []session.Marker) error {
	r.points, r.markers = points, markers
	return nil
}

var _ = Describe("Session", func() {
	var (
		recorder *seriesRecorder
		s        *session.Session
		strategy sim.Strategy
		grid     dynamo.Grid
	)

	BeforeEach(func() {
		recorder = &seriesRecorder{}
		strategy = sim.NewAdaptive(integrators.NewRK45(), sim.DefaultAdaptiveConfig())
		grid = dynamo.Linspace(0, 200, 500)

		var err error
		s, err = session.New(strategy, grid, session.SeriesView{Target: recorder})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("starts from the default parameters and displays once", func() {
			Expect(s.Params()).To(Equal(epidemic.DefaultParameters()))
			Expect(recorder.calls).To(Equal(1))
			Expect(recorder.xs).To(HaveLen(500))
			Expect(s.StrategyName()).To(Equal("rk45"))
		})

		It("names the three curves", func() {
			names := []string{}
			for _, sr := range recorder.series {
				names = append(names, sr.Name)
				Expect(sr.Values).To(HaveLen(500))
			}
			Expect(names).To(Equal([]string{"Susceptible", "Infected", "Recovered (or removed)"}))
		})

		It("normalizes starting parameters", func() {
			other, err := session.New(strategy, grid, session.SeriesView{Target: &seriesRecorder{}},
				session.WithParameters(epidemic.Parameters{Beta: 0.3, I0: 60, S0: 60}))
			Expect(err).NotTo(HaveOccurred())
			Expect(other.Params()).To(Equal(epidemic.Parameters{Beta: 0.3, I0: 40, S0: 60}))
		})

		It("rejects missing collaborators", func() {
			_, err := session.New(nil, grid, session.SeriesView{Target: recorder})
			Expect(err).To(HaveOccurred())
			_, err = session.New(strategy, grid, nil)
			Expect(err).To(HaveOccurred())
			_, err = session.New(strategy, dynamo.Grid{}, session.SeriesView{Target: recorder})
			Expect(errors.Is(err, dynamo.ErrInvalidGrid)).To(BeTrue())
		})
	})

	Describe("OnParameterChanged", func() {
		It("recomputes and redisplays on every change", func() {
			before := s.State()
			Expect(s.OnParameterChanged(epidemic.Beta, 0.5)).To(Succeed())

			Expect(recorder.calls).To(Equal(2))
			Expect(s.Params().Beta).To(Equal(0.5))
			Expect(s.State()).NotTo(BeIdenticalTo(before))
			Expect(before.Params.Beta).To(Equal(0.25))
		})

		It("snaps I0 back when the sum would exceed the population", func() {
			Expect(s.OnParameterChanged(epidemic.Infected0, 30)).To(Succeed())
			Expect(s.Params().I0).To(Equal(10.0))
			Expect(s.Params().S0).To(Equal(90.0))
		})

		It("reduces I0 by the excess when S0 grows", func() {
			Expect(s.OnParameterChanged(epidemic.Susceptible0, 95)).To(Succeed())
			Expect(s.Params()).To(Equal(epidemic.Parameters{Beta: 0.25, I0: 5, S0: 95}))
		})

		It("lets S0 absorb the excess once I0 is exhausted", func() {
			Expect(s.OnParameterChanged(epidemic.Infected0, 0)).To(Succeed())
			Expect(s.OnParameterChanged(epidemic.Susceptible0, 150)).To(Succeed())
			Expect(s.Params().I0).To(BeZero())
			Expect(s.Params().S0).To(Equal(100.0))
		})

		It("clamps beta into its range", func() {
			Expect(s.Dispatch(session.ParamChange{ID: epidemic.Beta, Value: 3})).To(Succeed())
			Expect(s.Params().Beta).To(Equal(1.0))
		})

		It("keeps the displayed state consistent with the parameters", func() {
			Expect(s.OnParameterChanged(epidemic.Susceptible0, 70)).To(Succeed())
			st := s.State()
			Expect(st.S[0]).To(Equal(70.0))
			Expect(st.I[0]).To(Equal(10.0))
			Expect(st.R[0]).To(Equal(20.0))
		})

		It("rejects non-finite values and keeps the last valid state", func() {
			Expect(s.OnParameterChanged(epidemic.Beta, 0.4)).To(Succeed())
			before := s.Params()
			shown := recorder.calls

			for _, tc := range []struct {
				id  epidemic.ParamID
				raw float64
			}{
				{epidemic.Beta, math.NaN()},
				{epidemic.Susceptible0, math.Inf(1)},
				{epidemic.Infected0, math.Inf(-1)},
			} {
				err := s.OnParameterChanged(tc.id, tc.raw)
				Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue(), "%s=%g", tc.id, tc.raw)
				var pe *dynamo.ParameterError
				Expect(errors.As(err, &pe)).To(BeTrue())
				Expect(pe.Name).To(Equal(tc.id.String()))
				Expect(s.Params()).To(Equal(before))
				Expect(s.State().Params).To(Equal(before))
			}
			Expect(recorder.calls).To(Equal(shown))

			Expect(s.OnParameterChanged(epidemic.Infected0, 5)).To(Succeed())
			Expect(s.Params()).To(Equal(epidemic.Parameters{Beta: 0.4, I0: 5, S0: 90}))
			Expect(s.State().Params).To(Equal(s.Params()))
		})

				It("reports display failures", func() {
			recorder.err = errors.New("window closed")
			err := s.OnParameterChanged(epidemic.Beta, 0.4)
			Expect(err).To(MatchError(ContainSubstring("window closed")))
		})
	})

	Describe("Reset", func() {
		It("restores the starting parameters", func() {
			Expect(s.OnParameterChanged(epidemic.Beta, 0.9)).To(Succeed())
			Expect(s.Reset()).To(Succeed())
			Expect(s.Params()).To(Equal(epidemic.DefaultParameters()))
		})
	})

	Describe("logging", func() {
		It("logs normalization and recomputation", func() {
			var buf bytes.Buffer
			logged, err := session.New(strategy, grid, session.SeriesView{Target: &seriesRecorder{}},
				session.WithLogger(log.New(&buf, "", 0)))
			Expect(err).NotTo(HaveOccurred())
			Expect(logged.OnParameterChanged(epidemic.Infected0, 50)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("i0=50 normalized"))
			Expect(buf.String()).To(ContainSubstring("recomputed rk45"))
		})
	})
})

var _ = Describe("PhaseView", func() {
	It("draws the trajectory with start and end markers", func() {
		curve := &curveRecorder{}
		_, err := session.New(
			sim.NewFixedStep("euler", integrators.NewEuler()),
			dynamo.UnitGrid(200),
			session.PhaseView{Target: curve},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(curve.points).To(HaveLen(201))
		Expect(curve.points[0]).To(Equal(session.Point3{X: 90, Y: 10, Z: 0}))
		Expect(curve.markers).To(HaveLen(2))
		Expect(curve.markers[0].Label).To(Equal("t = 0 [day]"))
		Expect(curve.markers[0].Style.Color()).To(Equal("red"))
		Expect(curve.markers[1].Label).To(Equal("t = 200 [day]"))
		Expect(curve.markers[1].Style.Color()).To(Equal("green"))
		Expect(curve.markers[1].Point).To(Equal(curve.points[200]))
	})

	It("can replace the series view on a live session", func() {
		recorder := &seriesRecorder{}
		s, err := session.New(
			sim.NewFixedStep("rk4", integrators.NewRK4()),
			dynamo.UnitGrid(200),
			session.SeriesView{Target: recorder},
		)
		Expect(err).NotTo(HaveOccurred())

		curve := &curveRecorder{}
		Expect(s.SetDisplay(session.PhaseView{Target: curve})).To(Succeed())
		Expect(curve.points).To(HaveLen(201))

		Expect(s.OnParameterChanged(epidemic.Beta, 0.1)).To(Succeed())
		Expect(recorder.calls).To(Equal(1))
	})
})
