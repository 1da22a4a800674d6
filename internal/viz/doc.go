// Package viz renders a helix scene in the terminal.
//
// The package reads a [scene.Scene] and draws it without any browser:
//
//   - [Canvas]: Braille-based pixel canvas (2x4 dots per cell)
//   - [Camera]: orbit camera projecting the scene box onto the canvas
//   - [Player]: Bubble Tea model that replays the scene's frames
//   - [EncodeGIF]: writes the frames as an animated GIF
//
// # Key Bindings
//
//	Space   - Play/Pause
//	[ ]     - Previous/next slider step
//	← →     - Step one frame
//	Home/g  - Back to the initial view
//	x/X y/Y - Rotate camera
//	+ -     - Zoom
//	T       - Cycle color themes
//	Q       - Quit
package viz
