package client

import (
	"fmt"
	"io"
	"sync"

	"docsearch/internal/port"
)

// TextSurface keeps a single region of plain lines, for terminals.
type TextSurface struct {
	id string

	mu    sync.Mutex
	lines []string
}

var _ port.Surface = (*TextSurface)(nil)

func NewTextSurface(id string) *TextSurface {
	return &TextSurface{id: id}
}

func (s *TextSurface) Lookup(id string) (port.Region, bool) {
	if id != s.id {
		return nil, false
	}
	return s, true
}

func (s *TextSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = s.lines[:0]
}

// Append ignores class; a terminal line has no styling hook.
func (s *TextSurface) Append(_, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

// Lines returns a copy of the rendered lines.
func (s *TextSurface) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// WriteTo writes the rendered lines, one per line.
func (s *TextSurface) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range s.Lines() {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
