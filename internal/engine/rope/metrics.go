package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a text span.
// It is the summary type for the rope tree and forms a monoid under Add.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the Unicode character (rune) count.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all bytes are ASCII (< 128), so byte and
	// character offsets coincide.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries (monoid operation).
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags & other.Flags,
	}

	if s.Flags&FlagHasNewlines != 0 || other.Flags&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}

	return result
}

// Zero returns the identity element for the summary monoid.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	sum := TextSummary{
		Bytes: len(s),
		Flags: FlagASCII,
	}

	for _, r := range s {
		sum.Chars++
		if r > 127 {
			sum.Flags &^= FlagASCII
		}
		if r == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		}
	}

	return sum
}

// byteIndexOfChar returns the byte offset of the charIdx-th character in s.
// charIdx values at or past the character count map to len(s).
func byteIndexOfChar(s string, charIdx int) int {
	if charIdx <= 0 {
		return 0
	}

	count := 0
	for i := range s {
		if count == charIdx {
			return i
		}
		count++
	}
	return len(s)
}

// charIndexOfByte returns the character offset of the byte at byteIdx in s.
func charIndexOfByte(s string, byteIdx int) int {
	if byteIdx <= 0 {
		return 0
	}
	if byteIdx > len(s) {
		byteIdx = len(s)
	}
	return utf8.RuneCountInString(s[:byteIdx])
}

// isUTF8Start returns true if the byte is the start of a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	// Continuation bytes are 10xxxxxx.
	return b&0xC0 != 0x80
}
