// Package imaging previews images in the terminal.
//
// Decoding and scaling run on two long-lived worker goroutines, one per
// concern, fed and drained over channels. The main loop polls the result
// channels non-blockingly once per frame and never waits on a worker.
//
// Every job carries a fresh ID. The viewer remembers only the ID of its
// latest request; results for any other ID are stale (the user already
// moved on) and are discarded on arrival. In-flight work is never
// cancelled, it is simply ignored when it lands late.
//
// A decode failure is a first-class result: the viewer transitions to a
// failed state carrying the error, so a broken file shows a message
// instead of a spinner that never resolves.
package imaging
