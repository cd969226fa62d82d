// Package sim turns single-step integrators into trajectory solvers.
//
// A [Strategy] maps (system, initial state, output grid) to a [dynamo.Result]
// sampled exactly at the grid instants. Two strategies are provided:
//
//   - [FixedStep]: one explicit step per grid interval; the grid must start
//     at 0 and be uniformly spaced.
//   - [Adaptive]: Dormand-Prince 5(4) stepping from 0 to the horizon with
//     error control, sampled by dense output at arbitrary grid instants.
//
// Strategies are stateless between calls and safe to reuse; a single
// strategy value must not be used from several goroutines at once.
package sim
