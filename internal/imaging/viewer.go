package imaging

import "github.com/google/uuid"

// State is the viewer's lifecycle for the current image.
type State int

const (
	StateIdle    State = iota // nothing shown
	StateLoading              // a decode or resize is in flight
	StateReady                // frame available
	StateFailed               // decode failed, error available
)

// Viewer tracks the image currently on screen and its in-flight job.
// All methods run on the main loop goroutine.
type Viewer struct {
	pipe  *Pipeline
	path  string
	jobID uuid.UUID
	state State
	proto *Protocol
	err   error
}

// NewViewer creates a viewer over pipe.
func NewViewer(pipe *Pipeline) *Viewer {
	return &Viewer{pipe: pipe}
}

// Show starts displaying the image at path fitted to cols×rows cells.
// Any in-flight job for a previous image becomes stale.
func (v *Viewer) Show(path string, cols, rows int) {
	v.path = path
	v.proto = nil
	v.err = nil
	v.state = StateLoading
	v.jobID = v.pipe.RequestDecode(path, cols, rows)
}

// Clear stops displaying anything. In-flight results will be discarded
// by ID when they land.
func (v *Viewer) Clear() {
	v.path = ""
	v.proto = nil
	v.err = nil
	v.state = StateIdle
}

// Resize re-rasterizes the current image for a new cell area. The frame
// is handed to the resize worker, so the viewer shows loading until the
// result returns.
func (v *Viewer) Resize(cols, rows int) {
	if v.state != StateReady || v.proto == nil {
		return
	}
	proto := v.proto
	v.proto = nil
	v.state = StateLoading
	v.jobID = v.pipe.RequestResize(proto, cols, rows)
}

// Poll consumes at most one result per worker channel and applies any
// that match the current job. Stale results are dropped. Returns true
// if the visible state changed.
func (v *Viewer) Poll() bool {
	changed := false
	if r, ok := v.pipe.PollDecode(); ok && v.apply(r) {
		changed = true
	}
	if r, ok := v.pipe.PollResize(); ok && v.apply(r) {
		changed = true
	}
	return changed
}

func (v *Viewer) apply(r Result) bool {
	if r.ID != v.jobID || v.state != StateLoading {
		return false
	}
	if r.Err != nil {
		v.proto = nil
		v.err = r.Err
		v.state = StateFailed
		return true
	}
	v.proto = r.Proto
	v.err = nil
	v.state = StateReady
	return true
}

// State returns the current lifecycle state.
func (v *Viewer) State() State {
	return v.state
}

// Path returns the path of the current image, if any.
func (v *Viewer) Path() string {
	return v.path
}

// Frame returns the renderable frame when ready, else nil.
func (v *Viewer) Frame() *Protocol {
	if v.state != StateReady {
		return nil
	}
	return v.proto
}

// Err returns the failure when in StateFailed, else nil.
func (v *Viewer) Err() error {
	if v.state != StateFailed {
		return nil
	}
	return v.err
}
