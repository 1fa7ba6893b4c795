// Package syntax maps source files to languages and source text to
// per-byte colors.
//
// Languages are a closed set of tagged variants, each bound to a chroma
// lexer. Resolution order for a file is: configured extension overrides,
// builtin extension table, then content-based detection. Markdown gets
// one extra step: fenced code blocks are re-highlighted with the fence's
// language, resolved by the same pure name lookup, so a ```go block
// inside a README colors like a Go file.
//
// Highlighting is whole-file and synchronous. The output is one color
// per source byte; every byte of a multi-byte rune carries the same
// color, which lets the render layer index colors by byte position while
// walking characters.
package syntax
