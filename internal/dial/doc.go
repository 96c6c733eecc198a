// Package dial models the circular safe dial and its rotation commands.
//
// The dial carries the numbers 0 through 99 in a circle with an arrow
// pointing at one of them; it starts at 50. A rotation command such as
// "L68" or "R12" turns the dial left (toward lower numbers) or right
// (toward higher numbers) by a distance measured in clicks, wrapping at
// both ends.
//
// This package is the foundational layer: all other internal packages
// import dial; dial imports nothing internal.
//
// Two counting policies are supported:
//   - end-of-rotation: count a zero only when a completed rotation leaves
//     the arrow pointing at 0 (at most once per command)
//   - every-click: count every single click that lands on 0, so one large
//     rotation can count several times
//
// All position arithmetic uses mathematical modulo: results are always in
// [0, 99], never negative.
package dial
