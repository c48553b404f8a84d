// Package viz renders the swinging pendulum in the terminal.
//
// The package draws on a Braille-based pixel canvas and exposes two
// surfaces:
//
//   - [CanvasRenderer]: a sim.Renderer that draws shelf, rod, bob and
//     trail into a [Canvas]
//   - [Model]: a Bubble Tea program with a stats panel, an optional
//     angle-vs-time chart and a configuration label overlay
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial angle
//	S     - Save an SVG snapshot of the canvas
//	Q     - Quit
package viz
