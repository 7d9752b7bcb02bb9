// Package progress renders tally progress events on a terminal.
//
// The renderer draws two lines and redraws them in place when the output
// is a terminal:
//
//	Progress: 42%
//	Estimated time left: 00:01:07
//
// A new frame is drawn for the first event, whenever the percentage moves
// past the last whole percent shown, and for the final event. When the
// output is not a terminal each frame is appended instead of redrawn.
package progress
