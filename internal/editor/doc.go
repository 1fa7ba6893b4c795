// Package editor holds the per-document editing state: the buffer, the
// cursor, the scroll position, and a derived view cache.
//
// The view cache is the only derived state in the system. It is keyed by
// the buffer's revision counter: a single Sync call compares revisions
// and rebuilds the flattened text, the line offset table, the widest
// line width, and the highlight colors together. Layout and color can
// therefore never describe different buffer states, and a no-op frame
// rebuilds nothing.
package editor
