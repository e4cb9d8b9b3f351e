// Package viz draws scenes in the terminal.
//
// [Canvas] is a braille dot grid and [DrawFrame] renders a scene frame
// onto it. [Model] is a Bubble Tea program that ticks a driver and maps
// input onto the scene:
//
//	←↑↓→  - Tilt gravity
//	0     - Level (gravity straight down)
//	Space - Shake
//	Mouse - Grab, drag and throw
//	Tab   - Next scene
//	R     - Reset the scene
//	P     - Pause
//	T     - Cycle themes
//	Q     - Quit
package viz
