// Package analysis sweeps one SIR input across a range and records the
// resulting trajectory metrics.
//
//   - [Sweep]: one integration per parameter value, metrics per point
//   - [SweepToASCII]: the swept metrics as an asciigraph plot
//
// Sweeping β across 0.1 shows the threshold at R0 = 1: below it the final
// size stays near the initially infected share, above it the outbreak takes
// off.
//
//	pts, err := analysis.Sweep(strategy, grid, base, epidemic.Beta, 0, 1, 41)
package analysis
