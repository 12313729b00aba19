package protocol

import (
	"reflect"
	"testing"
)

func pushAll(f *Framer, chunks ...[]byte) []string {
	var got []string
	for _, c := range chunks {
		for _, line := range f.Push(c) {
			got = append(got, string(line))
		}
	}
	if line, ok := f.Flush(); ok {
		got = append(got, string(line))
	}
	return got
}

func TestFramer_SingleChunk(t *testing.T) {
	var f Framer
	got := pushAll(&f, []byte("one\ntwo\nthree\n"))
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestFramer_LineSplitAcrossChunks(t *testing.T) {
	var f Framer
	got := pushAll(&f,
		[]byte(`{"type":"ai","content":"Hel`),
		[]byte("lo\"}\n{\"type\":\"ai\""),
		[]byte(",\"content\":\" world\"}\n"),
	)
	want := []string{
		`{"type":"ai","content":"Hello"}`,
		`{"type":"ai","content":" world"}`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

// Framing must be invariant under chunking: every way of slicing the same
// bytes yields the same lines, including slices that land mid-rune.
func TestFramer_ChunkingInvariance(t *testing.T) {
	input := []byte("第一行文本\nsecond\n{\"k\":\"值\"}\ntail")
	var f Framer
	want := pushAll(&f, input)

	for size := 1; size <= len(input); size++ {
		var g Framer
		var chunks [][]byte
		for i := 0; i < len(input); i += size {
			end := i + size
			if end > len(input) {
				end = len(input)
			}
			chunks = append(chunks, input[i:end])
		}
		got := pushAll(&g, chunks...)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chunk size %d: lines = %v, want %v", size, got, want)
		}
	}
}

func TestFramer_ResidualWithoutNewline(t *testing.T) {
	var f Framer
	if lines := f.Push([]byte("no newline yet")); len(lines) != 0 {
		t.Fatalf("expected no complete lines, got %v", lines)
	}
	if f.Pending() == 0 {
		t.Error("expected pending bytes")
	}
	line, ok := f.Flush()
	if !ok {
		t.Fatal("expected residual line from Flush")
	}
	if string(line) != "no newline yet" {
		t.Errorf("residual = %q", line)
	}
	if _, ok := f.Flush(); ok {
		t.Error("second Flush should yield nothing")
	}
}

func TestFramer_EmptyFlush(t *testing.T) {
	var f Framer
	f.Push([]byte("complete\n"))
	if line, ok := f.Flush(); ok {
		t.Errorf("expected empty framer after terminated line, got %q", line)
	}
}

func TestFramer_CRLF(t *testing.T) {
	var f Framer
	got := pushAll(&f, []byte("a\r\nb\r\n"))
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestFramer_EmptyLines(t *testing.T) {
	var f Framer
	got := pushAll(&f, []byte("a\n\nb\n"))
	want := []string{"a", "", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

// Returned lines must stay valid after later pushes reuse the buffer.
func TestFramer_LinesDoNotAlias(t *testing.T) {
	var f Framer
	first := f.Push([]byte("alpha\nbet"))
	f.Push([]byte("a\ngamma\n"))
	if string(first[0]) != "alpha" {
		t.Errorf("earlier line mutated: %q", first[0])
	}
}
