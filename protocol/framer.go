package protocol

import "bytes"

// Framer splits an incoming sequence of raw byte chunks into complete,
// newline-terminated lines. Chunk boundaries are arbitrary: a chunk may cut
// a JSON record, or even a multi-byte UTF-8 sequence, at any byte offset.
// Framing operates on raw bytes and only hands out a line once its '\n' has
// arrived, so a rune split across two chunks is reassembled before anyone
// looks at it ('\n' is a single byte and never occurs inside a multi-byte
// UTF-8 sequence).
//
// A Framer is not safe for concurrent use; a stream has exactly one reader.
type Framer struct {
	rest []byte
}

// Push appends a chunk and returns the complete lines it unlocked, oldest
// first, with the trailing '\n' (and an optional preceding '\r') stripped.
// Any trailing partial line is retained and prepended to the next chunk.
func (f *Framer) Push(chunk []byte) [][]byte {
	f.rest = append(f.rest, chunk...)

	var lines [][]byte
	for {
		i := bytes.IndexByte(f.rest, '\n')
		if i < 0 {
			break
		}
		// Copy the line out: f.rest's backing array is reused across pushes.
		line := trimCR(f.rest[:i])
		out := make([]byte, len(line))
		copy(out, line)
		lines = append(lines, out)
		f.rest = f.rest[i+1:]
	}

	if len(f.rest) == 0 {
		f.rest = nil
	}
	return lines
}

// Flush returns the residual partial line at end-of-stream, if any. A
// producer that omits the final newline still gets its last record framed.
// After Flush the framer is empty and reusable.
func (f *Framer) Flush() ([]byte, bool) {
	if len(f.rest) == 0 {
		return nil, false
	}
	line := trimCR(f.rest)
	out := make([]byte, len(line))
	copy(out, line)
	f.rest = nil
	return out, true
}

// Pending reports how many buffered bytes are waiting for a newline.
func (f *Framer) Pending() int {
	return len(f.rest)
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
