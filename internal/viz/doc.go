// Package viz renders quarter-car results in the terminal.
//
// The package implements a parameter editor using the Bubble Tea framework:
//
//   - [Editor]: edit masses, springs, dampers and forcing, rerun on every
//     accepted change
//   - [PlotSignal], [PlotPositions]: asciigraph charts of a result
//
// # Key Bindings
//
//	j/k   - Select row
//	enter - Edit value (or cycle waveform / method)
//	h/l   - Scale value down/up by 10% (or cycle choices)
//	esc   - Cancel edit
//	r     - Reset to the starting configuration
//	q     - Quit
//
// Typed values are parsed as plain numbers. Anything else is reported
// inline and the previous value is kept.
package viz
