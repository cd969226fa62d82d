package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Continuous extension of the 5th-order solution. Row i weights stage k_i,
// column j the power sigma^(j+1), sigma in [0, 1] across the step.
var densePoly = [7][4]float64{
	{1, -8048581381.0 / 2820520608.0, 8663915743.0 / 2820520608.0, -12715105075.0 / 11282082432.0},
	{0, 0, 0, 0},
	{0, 131558114200.0 / 32700410799.0, -68118460800.0 / 10900136933.0, 87487479700.0 / 32700410799.0},
	{0, -1754552775.0 / 470086768.0, 14199869525.0 / 1410260304.0, -10690763975.0 / 1880347072.0},
	{0, 127303824393.0 / 49829197408.0, -318862633887.0 / 49829197408.0, 701980252875.0 / 199316789632.0},
	{0, -282668133.0 / 205662961.0, 2019193451.0 / 616988883.0, -1453857185.0 / 822651844.0},
	{0, 40617522.0 / 29380423.0, -110615467.0 / 29380423.0, 69997945.0 / 29380423.0},
}

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Step advances one step of size dt without step-size control.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	stage, _, _ := r.StepAdaptive(dyn, x, t, dt, 1e-6, 1e-9)
	return stage.X
}

// StepAdaptive attempts one step of size dt and returns the proposed state,
// its scaled error norm and the step size to try next. The caller accepts
// the step when Stage.ErrNorm <= 1.
func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt, rtol, atol float64) (dynamo.Stage, float64, error) {
	n := len(x)
	if n != dyn.StateDim() {
		return dynamo.Stage{}, dt, fmt.Errorf("%w: state has %d components, system %d", dynamo.ErrDimensionMismatch, n, dyn.StateDim())
	}

	var k [7]dynamo.State
	k[0] = dyn.Derive(x, t)

	tmp := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*b21*k[0][i]
	}
	k[1] = dyn.Derive(tmp, t+a2*dt)

	tmp = make(dynamo.State, n)
	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b31*k[0][i]+b32*k[1][i])
	}
	k[2] = dyn.Derive(tmp, t+a3*dt)

	tmp = make(dynamo.State, n)
	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b41*k[0][i]+b42*k[1][i]+b43*k[2][i])
	}
	k[3] = dyn.Derive(tmp, t+a4*dt)

	tmp = make(dynamo.State, n)
	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b51*k[0][i]+b52*k[1][i]+b53*k[2][i]+b54*k[3][i])
	}
	k[4] = dyn.Derive(tmp, t+a5*dt)

	tmp = make(dynamo.State, n)
	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b61*k[0][i]+b62*k[1][i]+b63*k[2][i]+b64*k[3][i]+b65*k[4][i])
	}
	k[5] = dyn.Derive(tmp, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k[0][i]+c3*k[2][i]+c4*k[3][i]+c5*k[4][i]+c6*k[5][i])
	}
	if !xNew.IsValid() {
		return dynamo.Stage{}, dt, dynamo.ErrInvalidState
	}

	k[6] = dyn.Derive(xNew, t+dt)

	sumSq := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k[0][i] + dc3*k[2][i] + dc4*k[3][i] + dc5*k[4][i] + dc6*k[5][i] + dc7*k[6][i])
		scale := atol + rtol*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		sumSq += (errEst / scale) * (errEst / scale)
	}
	errNorm := 0.0
	if n > 0 {
		errNorm = math.Sqrt(sumSq / float64(n))
	}

	var dtNew float64
	switch {
	case errNorm > 1:
		dtNew = dt * math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.2))
	case errNorm > 0:
		dtNew = dt * math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
	default:
		dtNew = dt * r.maxScale
	}

	stage := dynamo.Stage{
		X:       xNew,
		ErrNorm: errNorm,
		Dense:   &denseStep{t0: t, h: dt, x0: x.Clone(), x1: xNew, k: k},
	}
	return stage, dtNew, nil
}

// denseStep interpolates inside one accepted Dormand-Prince step.
type denseStep struct {
	t0, h  float64
	x0, x1 dynamo.State
	k      [7]dynamo.State
}

func (d *denseStep) At(t float64) dynamo.State {
	sigma := (t - d.t0) / d.h
	switch {
	case sigma <= 0:
		return d.x0.Clone()
	case sigma >= 1:
		return d.x1.Clone()
	}

	var p [4]float64
	p[0] = sigma
	for j := 1; j < 4; j++ {
		p[j] = p[j-1] * sigma
	}

	out := make(dynamo.State, len(d.x0))
	for i := range out {
		acc := 0.0
		for s := 0; s < 7; s++ {
			w := densePoly[s][0]*p[0] + densePoly[s][1]*p[1] + densePoly[s][2]*p[2] + densePoly[s][3]*p[3]
			acc += w * d.k[s][i]
		}
		out[i] = d.x0[i] + d.h*acc
	}
	return out
}
