// Package buffer provides the mutable text buffer used by editor sessions.
//
// A Buffer wraps an immutable rope and tracks a monotonically increasing
// revision counter. Every edit bumps the revision; callers that cache
// derived data (line offsets, highlight colors, layout) compare revisions
// instead of carrying their own dirty flags, so a cache can never miss an
// edit or rebuild twice for the same state.
//
// Dirtiness for the save prompt is derived the same way: the buffer
// remembers the revision that was last written to disk, and IsModified
// reports whether the current revision differs.
//
// All offsets in the public API are character (rune) offsets, matching the
// cursor and rendering layers. Byte offsets never escape the rope.
package buffer
