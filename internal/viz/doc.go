// Package viz renders a Simulation in the terminal.
//
// The live view is a Bubble Tea program: a braille canvas shows the compact
// body (horizon disc, photon sphere and ISCO rings) and every body with its
// trail, next to a stats panel with an energy chart.
//
//   - [Model]: live view of one simulation
//   - [Menu]: preset picker that starts a live view
//   - [Canvas]: braille pixel canvas with per-cell colour
//
// # Key Bindings
//
//	G       - Toggle gravity
//	1 2 3   - First-order, leapfrog, fourth-order integration
//	Space   - Reset simulation
//	P       - Pause/Resume
//	+ -     - Zoom
//	←→↑↓    - Rotate view
//	[ ]     - Slower/faster (steps per frame)
//	F       - Fit view to bodies
//	T       - Cycle themes
//	?       - Show help overlay
package viz
