// Package epidemic defines the SIR compartmental model on a population of
// fixed size 100, its user-facing parameters and the normalization rule that
// keeps those parameters feasible.
package epidemic
