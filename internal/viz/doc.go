// Package viz renders a running simulation in the terminal.
//
//   - [Terminal]: a sim.Frontend that forwards frames to a Bubble Tea program
//   - [Model]: the Bubble Tea model drawing the arena and a kinetic energy chart
//   - [Canvas]: Braille-based pixel canvas
//
// # Key Bindings
//
//	R        - Reset the population
//	Up/K     - Add a ball
//	Down/J   - Remove a ball (never below one)
//	Space    - Pause/Resume
//	T        - Cycle color themes
//	?        - Show help
//	Q/Ctrl+C - Quit
package viz
