package viz

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/session"
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	panelWidth    = 46
	barWidth      = 14
)

type ViewMode int

const (
	ViewSeries ViewMode = iota
	ViewPhase
)

func (v ViewMode) String() string {
	if v == ViewPhase {
		return "phase"
	}
	return "series"
}

func ParseViewMode(name string) (ViewMode, error) {
	switch strings.ToLower(name) {
	case "series", "":
		return ViewSeries, nil
	case "phase":
		return ViewPhase, nil
	}
	return ViewSeries, fmt.Errorf("unknown view %q", name)
}

var sliderLabels = map[epidemic.ParamID]string{
	epidemic.Beta:         "β transmission",
	epidemic.Infected0:    "I₀ infected",
	epidemic.Susceptible0: "S₀ susceptible",
}

type Options struct {
	View        ViewMode
	BetaStep    float64
	PercentStep float64
	Logger      *log.Logger
}

// App is the bubbletea front end of a session. It is also the session's
// rendering collaborator: the session pushes every recomputed trajectory into
// DisplaySeries or DisplayCurve3D and View draws whatever was pushed last.
type App struct {
	sess   *session.Session
	view   ViewMode
	keys   keyMap
	help   help.Model
	input  textinput.Model
	logger *log.Logger

	editing     bool
	selected    int
	betaStep    float64
	percentStep float64

	xs      []float64
	series  []session.Series
	points  []session.Point3
	markers []session.Marker
	camera  *Camera

	width, height int
	err           error
}

func NewApp(opts Options) *App {
	if opts.BetaStep <= 0 {
		opts.BetaStep = 0.01
	}
	if opts.PercentStep <= 0 {
		opts.PercentStep = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	input := textinput.New()
	input.Prompt = "value: "
	input.CharLimit = 16
	input.Width = 12

	return &App{
		view:        opts.View,
		keys:        defaultKeyMap(),
		help:        help.New(),
		input:       input,
		logger:      opts.Logger,
		betaStep:    opts.BetaStep,
		percentStep: opts.PercentStep,
		camera:      NewCamera(),
		width:       defaultWidth,
		height:      defaultHeight,
	}
}

// Attach binds the session driving this app.
func (a *App) Attach(s *session.Session) { a.sess = s }

// Display returns the session adapter for the current view mode.
func (a *App) Display() session.Display {
	if a.view == ViewPhase {
		return session.PhaseView{Target: a}
	}
	return session.SeriesView{Target: a}
}

func (a *App) DisplaySeries(xs []float64, series []session.Series) error {
	a.xs, a.series = xs, series
	return nil
}

func (a *App) DisplayCurve3D(points []session.Point3, markers []session.Marker) error {
	a.points, a.markers = points, markers
	return nil
}

func (a *App) Mode() ViewMode { return a.view }

func (a *App) Err() error { return a.err }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, nil
	case tea.KeyMsg:
		if a.editing {
			return a.editKey(msg)
		}
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		a.selected = (a.selected + len(epidemic.ParamIDs) - 1) % len(epidemic.ParamIDs)
	case key.Matches(msg, a.keys.Down):
		a.selected = (a.selected + 1) % len(epidemic.ParamIDs)
	case key.Matches(msg, a.keys.Inc):
		a.nudge(1)
	case key.Matches(msg, a.keys.Dec):
		a.nudge(-1)
	case key.Matches(msg, a.keys.IncFast):
		a.nudge(10)
	case key.Matches(msg, a.keys.DecFast):
		a.nudge(-10)
	case key.Matches(msg, a.keys.Edit):
		a.editing = true
		a.input.SetValue(strconv.FormatFloat(a.current(), 'g', -1, 64))
		a.input.CursorEnd()
		return a, a.input.Focus()
	case key.Matches(msg, a.keys.View):
		a.toggleView()
	case key.Matches(msg, a.keys.Reset):
		a.camera.Reset()
		if a.sess != nil {
			a.err = a.sess.Reset()
		}
	case key.Matches(msg, a.keys.Theme):
		NextTheme()
	case key.Matches(msg, a.keys.Rotate):
		a.rotate(msg.String())
	case key.Matches(msg, a.keys.Zoom):
		if s := msg.String(); s == "+" || s == "=" {
			a.camera.ZoomIn()
		} else {
			a.camera.ZoomOut()
		}
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		raw := strings.TrimSpace(a.input.Value())
		a.stopEditing()
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			a.err = fmt.Errorf("not a number: %q", raw)
			return a, nil
		}
		a.change(a.param(), v)
		return a, nil
	case tea.KeyEsc:
		a.stopEditing()
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) stopEditing() {
	a.editing = false
	a.input.Blur()
}

func (a *App) param() epidemic.ParamID { return epidemic.ParamIDs[a.selected] }

func (a *App) current() float64 {
	if a.sess == nil {
		return 0
	}
	return a.sess.Params().Get(a.param())
}

func (a *App) step(id epidemic.ParamID) float64 {
	if id == epidemic.Beta {
		return a.betaStep
	}
	return a.percentStep
}

// nudge moves the selected slider by n increments.
func (a *App) nudge(n float64) {
	id := a.param()
	v := a.current() + n*a.step(id)
	a.change(id, math.Round(v*1e9)/1e9)
}

func (a *App) change(id epidemic.ParamID, v float64) {
	if a.sess == nil {
		return
	}
	a.err = a.sess.OnParameterChanged(id, v)
	if a.err != nil {
		a.logger.Printf("change %s=%g: %v", id, v, a.err)
	}
}

func (a *App) toggleView() {
	if a.view == ViewSeries {
		a.view = ViewPhase
	} else {
		a.view = ViewSeries
	}
	if a.sess != nil {
		a.err = a.sess.SetDisplay(a.Display())
	}
}

func (a *App) rotate(k string) {
	const d = 0.1
	switch k {
	case "x":
		a.camera.RotateX(d)
	case "X":
		a.camera.RotateX(-d)
	case "y":
		a.camera.RotateY(d)
	case "Y":
		a.camera.RotateY(-d)
	case "z":
		a.camera.RotateZ(d)
	case "Z":
		a.camera.RotateZ(-d)
	}
}

func (a *App) View() string {
	st := newStyles(CurrentTheme)

	plotW := max(a.width-panelWidth-8, 20)
	plotH := max(a.height-10, 8)

	var plot string
	if a.view == ViewPhase {
		plot = RenderPhase(a.points, a.markers, a.camera, plotW, plotH)
	} else {
		plot = PlotSeries(a.xs, a.series, plotW, plotH)
	}

	var header strings.Builder
	header.WriteString(st.title.Render("SIR EPIDEMIC"))
	if a.sess != nil {
		header.WriteString("  " + st.subtle.Render(a.sess.StrategyName()+" · "+a.view.String()+" view"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, st.plot.Render(plot), st.panel.Render(a.panel(st)))
	return header.String() + "\n" + body + "\n" + a.help.View(a.keys)
}

func (a *App) panel(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render("PARAMETERS") + "\n\n")

	if a.sess == nil {
		b.WriteString(st.subtle.Render("no session") + "\n")
		return b.String()
	}

	p := a.sess.Params()
	lw := 0
	for _, l := range sliderLabels {
		lw = max(lw, runewidth.StringWidth(l))
	}

	for i, id := range epidemic.ParamIDs {
		lo, hi := id.Range()
		v := p.Get(id)
		label := runewidth.FillRight(sliderLabels[id], lw)
		line := fmt.Sprintf("%s %s %s", label, st.sliderBar((v-lo)/(hi-lo), barWidth), formatParam(id, v))
		if i == a.selected {
			b.WriteString(st.active.Render("▸ ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("  " + runewidth.FillRight("R₀ recovered", lw) + " " +
		st.subtle.Render(fmt.Sprintf("%.1f%%", p.R0Init())) + "\n")

	if a.editing {
		b.WriteString("\n" + a.input.View() + "\n")
	}
	if a.err != nil {
		b.WriteString("\n" + st.err.Render(a.err.Error()) + "\n")
	}

	b.WriteString("\n" + st.separator(panelWidth-6) + "\n\n")
	b.WriteString(st.title.Render("METRICS") + "\n\n")

	rows := metrics.Summarize(a.sess.State()).Lines()
	mw := 0
	for _, r := range rows {
		mw = max(mw, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		b.WriteString(st.label.Render(runewidth.FillRight(r[0], mw)) + "  " + st.value.Render(r[1]) + "\n")
	}
	return b.String()
}

func formatParam(id epidemic.ParamID, v float64) string {
	if id == epidemic.Beta {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%5.1f%%", v)
}

// Run starts the bubbletea program on the alternate screen.
func Run(a *App, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(a, opts...).Run()
	return err
}
