package buffer

// Revision identifies a buffer state. Revisions are ordered: a larger
// value always means a later state of the same buffer.
type Revision uint64

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithTabWidth sets the tab width used for display layout.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}
