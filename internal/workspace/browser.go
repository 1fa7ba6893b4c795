// Package workspace provides the sidebar's view of the file system: a
// directory listing rooted at the launch directory, plus the repository
// branch name for the title bar.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// ParentEntry is the synthetic listing entry that ascends one level.
const ParentEntry = ".."

// Entry is one row of the directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Browser walks directories at or below a fixed root. The listing
// refreshes itself when the watched directory changes on disk.
type Browser struct {
	root    string
	dir     string
	entries []Entry
	scroll  int

	watcher *fsnotify.Watcher
	stale   atomic.Bool
	done    chan struct{}
}

// NewBrowser opens a browser rooted at root. A file-watch setup failure
// is not fatal; the listing simply stops auto-refreshing.
func NewBrowser(root string) (*Browser, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	b := &Browser{
		root: abs,
		dir:  abs,
		done: make(chan struct{}),
	}
	if err := b.reload(); err != nil {
		return nil, err
	}

	if w, err := fsnotify.NewWatcher(); err == nil {
		b.watcher = w
		_ = w.Add(abs)
		go b.watch()
	}
	return b, nil
}

// watch marks the listing stale on any event in the current directory.
func (b *Browser) watch() {
	for {
		select {
		case _, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			b.stale.Store(true)
		case _, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
		case <-b.done:
			return
		}
	}
}

// Close releases the file watcher.
func (b *Browser) Close() {
	close(b.done)
	if b.watcher != nil {
		_ = b.watcher.Close()
	}
}

// ConsumeRefresh reloads the listing if the watcher flagged a change
// since the last call. Returns true when the listing was rebuilt.
func (b *Browser) ConsumeRefresh() bool {
	if !b.stale.Swap(false) {
		return false
	}
	_ = b.reload()
	return true
}

// reload rebuilds the listing: directories first, each group sorted by
// name, with the parent entry on top when below the root.
func (b *Browser) reload() error {
	dirEntries, err := os.ReadDir(b.dir)
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(dirEntries)+1)
	if b.dir != b.root {
		entries = append(entries, Entry{Name: ParentEntry, IsDir: true})
	}
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}

	fixed := 0
	if b.dir != b.root {
		fixed = 1
	}
	rest := entries[fixed:]
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].IsDir != rest[j].IsDir {
			return rest[i].IsDir
		}
		return rest[i].Name < rest[j].Name
	})

	b.entries = entries
	if b.scroll > len(entries) {
		b.scroll = len(entries)
	}
	return nil
}

// Entries returns the current listing.
func (b *Browser) Entries() []Entry {
	return b.entries
}

// Dir returns the absolute path of the listed directory.
func (b *Browser) Dir() string {
	return b.dir
}

// RelDir returns the listed directory relative to the root, "." at the
// root itself.
func (b *Browser) RelDir() string {
	rel, err := filepath.Rel(b.root, b.dir)
	if err != nil {
		return b.dir
	}
	return rel
}

// Open resolves a click on entry index i. Directory entries change the
// listed directory and return descend=true; file entries return the
// absolute path to open.
func (b *Browser) Open(i int) (path string, descend bool, err error) {
	if i < 0 || i >= len(b.entries) {
		return "", false, nil
	}
	e := b.entries[i]

	if e.Name == ParentEntry {
		return "", true, b.setDir(filepath.Dir(b.dir))
	}
	full := filepath.Join(b.dir, e.Name)
	if e.IsDir {
		return "", true, b.setDir(full)
	}
	return full, false, nil
}

// setDir switches the listing and the watch to a new directory.
func (b *Browser) setDir(dir string) error {
	prev := b.dir
	b.dir = dir
	b.scroll = 0
	if err := b.reload(); err != nil {
		b.dir = prev
		_ = b.reload()
		return err
	}

	if b.watcher != nil {
		_ = b.watcher.Remove(prev)
		_ = b.watcher.Add(dir)
	}
	return nil
}

// Scroll returns the listing scroll offset in rows.
func (b *Browser) Scroll() int {
	return b.scroll
}

// ScrollBy moves the listing scroll, clamped so the last entry can
// reach the top but not beyond.
func (b *Browser) ScrollBy(delta int) {
	max := len(b.entries) - 1
	if max < 0 {
		max = 0
	}
	b.scroll += delta
	if b.scroll < 0 {
		b.scroll = 0
	}
	if b.scroll > max {
		b.scroll = max
	}
}
