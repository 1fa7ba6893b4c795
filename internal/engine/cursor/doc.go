// Package cursor implements line/column cursor positioning over a text
// buffer.
//
// A Cursor is an immutable value type addressed in character columns.
// Movement methods return a new cursor; they never mutate the receiver.
// Vertical movement clamps the column to the target line length rather
// than keeping a sticky goal column.
//
// The package also maps between character columns and display columns,
// which differ in the presence of tabs and wide runes. Rendering and
// mouse hit-testing both go through that mapping so a click always lands
// on the character it visually covers.
package cursor
