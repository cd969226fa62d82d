package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/sim"
)

// ParamChange is the message a UI sends when a slider moves.
type ParamChange struct {
	ID    epidemic.ParamID
	Value float64
}

type Session struct {
	strategy sim.Strategy
	grid     dynamo.Grid
	display  Display
	logger   *log.Logger

	initial epidemic.Parameters
	params  epidemic.Parameters
	state   *epidemic.Compartments
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithParameters sets the starting parameters; they are normalized first.
func WithParameters(p epidemic.Parameters) Option {
	return func(s *Session) { s.initial = p.Normalize() }
}

// New builds a session and performs the initial computation and display.
func New(strategy sim.Strategy, grid dynamo.Grid, display Display, opts ...Option) (*Session, error) {
	if strategy == nil {
		return nil, errors.New("session: nil strategy")
	}
	if display == nil {
		return nil, errors.New("session: nil display")
	}
	if grid.Empty() {
		return nil, fmt.Errorf("session: %w: empty grid", dynamo.ErrInvalidGrid)
	}

	s := &Session{
		strategy: strategy,
		grid:     grid,
		display:  display,
		logger:   log.New(io.Discard, "", 0),
		initial:  epidemic.DefaultParameters(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.recompute(s.initial); err != nil {
		return nil, err
	}
	return s, nil
}

// OnParameterChanged replaces one parameter with raw, normalizes against the
// current values of the others, recomputes and redisplays. It returns only
// after the display has been updated.
// Non-finite values are rejected and leave the session untouched.
func (s *Session) OnParameterChanged(id epidemic.ParamID, raw float64) error {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		lo, hi := id.Range()
		return fmt.Errorf("session: %w", &dynamo.ParameterError{
			Name: id.String(), Value: raw, Min: lo, Max: hi, Reason: "not a finite number",
		})
	}
	next := s.params.Apply(id, raw)
	if next.Get(id) != raw {
		s.logger.Printf("%s=%g normalized to %s", id, raw, next)
	}
	return s.recompute(next)
}

func (s *Session) Dispatch(msg ParamChange) error {
	return s.OnParameterChanged(msg.ID, msg.Value)
}

// Reset restores the starting parameters.
func (s *Session) Reset() error {
	return s.recompute(s.initial)
}

// SetDisplay switches the rendering target and shows the current state on it.
func (s *Session) SetDisplay(d Display) error {
	if d == nil {
		return errors.New("session: nil display")
	}
	s.display = d
	return d.Show(s.state)
}

func (s *Session) Params() epidemic.Parameters { return s.params }

// State is the most recently computed trajectory.
func (s *Session) State() *epidemic.Compartments { return s.state }

func (s *Session) Grid() dynamo.Grid { return s.grid }

func (s *Session) StrategyName() string { return s.strategy.Name() }

// recompute only adopts p once it has integrated successfully.
func (s *Session) recompute(p epidemic.Parameters) error {
	c, err := epidemic.Integrate(s.strategy, s.grid, p)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.params, s.state = p, c
	s.logger.Printf("recomputed %s with %s: %d steps, %d rejected", c.Strategy, p, c.Steps, c.Rejected)

	if err := s.display.Show(c); err != nil {
		return fmt.Errorf("session: display: %w", err)
	}
	return nil
}
