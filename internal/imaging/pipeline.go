package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// budgetCellX and budgetCellY bound the pre-resize pixel budget per
// terminal cell. Decoded images are shrunk to at most cols*budgetCellX ×
// rows*budgetCellY pixels before rasterizing, so a huge photo never
// keeps its full pixel data alive for a small preview.
const (
	budgetCellX = 10
	budgetCellY = 20
)

// decodeJob asks the decode worker to load path and fit it to a cell
// area.
type decodeJob struct {
	id   uuid.UUID
	path string
	cols int
	rows int
}

// resizeJob asks the resize worker to re-rasterize an already decoded
// image for a new cell area.
type resizeJob struct {
	id    uuid.UUID
	proto *Protocol
	cols  int
	rows  int
}

// Result is the outcome of a decode or resize job. Exactly one of Proto
// and Err is set.
type Result struct {
	ID    uuid.UUID
	Proto *Protocol
	Err   error
}

// Pipeline owns the two worker goroutines and their channels.
type Pipeline struct {
	decodeJobs chan decodeJob
	resizeJobs chan resizeJob

	decodeResults chan Result
	resizeResults chan Result
}

// NewPipeline creates a pipeline and starts its workers.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		decodeJobs:    make(chan decodeJob, 16),
		resizeJobs:    make(chan resizeJob, 16),
		decodeResults: make(chan Result, 16),
		resizeResults: make(chan Result, 16),
	}
	go p.decodeWorker()
	go p.resizeWorker()
	return p
}

// Close shuts the workers down. No requests may follow.
func (p *Pipeline) Close() {
	close(p.decodeJobs)
	close(p.resizeJobs)
}

// RequestDecode queues a decode of path fitted to cols×rows cells and
// returns the job ID.
func (p *Pipeline) RequestDecode(path string, cols, rows int) uuid.UUID {
	id := uuid.New()
	p.decodeJobs <- decodeJob{id: id, path: path, cols: cols, rows: rows}
	return id
}

// RequestResize queues a re-rasterize of proto for a new cell area and
// returns the job ID.
func (p *Pipeline) RequestResize(proto *Protocol, cols, rows int) uuid.UUID {
	id := uuid.New()
	p.resizeJobs <- resizeJob{id: id, proto: proto, cols: cols, rows: rows}
	return id
}

// PollDecode returns one pending decode result without blocking.
func (p *Pipeline) PollDecode() (Result, bool) {
	select {
	case r := <-p.decodeResults:
		return r, true
	default:
		return Result{}, false
	}
}

// PollResize returns one pending resize result without blocking.
func (p *Pipeline) PollResize() (Result, bool) {
	select {
	case r := <-p.resizeResults:
		return r, true
	default:
		return Result{}, false
	}
}

func (p *Pipeline) decodeWorker() {
	for job := range p.decodeJobs {
		proto, err := decodeAndFit(job.path, job.cols, job.rows)
		p.decodeResults <- Result{ID: job.id, Proto: proto, Err: err}
	}
}

func (p *Pipeline) resizeWorker() {
	for job := range p.resizeJobs {
		// The protocol was handed over by the viewer; the worker owns it
		// until the result is delivered.
		job.proto.render(job.cols, job.rows)
		p.resizeResults <- Result{ID: job.id, Proto: job.proto}
	}
}

// decodeAndFit loads an image, shrinks it to the pixel budget for the
// target area, and rasterizes it.
func decodeAndFit(path string, cols, rows int) (*Protocol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", filepath.Base(path), err)
	}

	img = shrinkToBudget(img, cols*budgetCellX, rows*budgetCellY)
	return newProtocol(img, cols, rows), nil
}

// shrinkToBudget downscales img to fit maxW×maxH pixels. Images inside
// the budget pass through untouched.
func shrinkToBudget(img image.Image, maxW, maxH int) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	fw, fh := fitInto(w, h, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, fw, fh))
	scaleNearest(dst, img)
	return dst
}

// IsImagePath reports whether path has a known image extension.
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	default:
		return false
	}
}
