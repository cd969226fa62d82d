// Package viz provides the terminal rendering collaborators of a session.
//
//   - [App]: bubbletea program with three sliders, a metrics panel and the plot
//   - [PlotSeries]: S, I and R against time via asciigraph
//   - [RenderPhase]: the (S, I, R) curve on a braille [Canvas] through a [Camera]
//   - [PhaseCanvas]: the same portrait as a bare canvas, for export
//
// # Key Bindings
//
//	↑/↓     - Select slider
//	←/→     - Decrease/increase by one step (H/L for ten)
//	Enter   - Type an exact value
//	V       - Toggle series and phase view
//	R       - Reset parameters and camera
//	T       - Cycle color themes
//	X/Y/Z   - Rotate the phase view (shift reverses)
//	+/-     - Zoom the phase view
//	?       - Show full help
package viz
