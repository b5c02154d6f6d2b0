package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Rank is one scored search hit.
type Rank struct {
	Path  string
	Score float64
}

// Ranking is an ordered result set. On the wire it is a JSON object
// mapping path to score; key order is significant and preserved in both
// directions.
type Ranking []Rank

// SortDesc stable-sorts the ranking by score, highest first. Ties keep
// their current relative order.
func (r Ranking) SortDesc() {
	sort.SliceStable(r, func(i, j int) bool {
		return r[i].Score > r[j].Score
	})
}

// Top returns a sorted copy holding at most n entries. n <= 0 means no limit.
func (r Ranking) Top(n int) Ranking {
	out := make(Ranking, len(r))
	copy(out, r)
	out.SortDesc()
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (r Ranking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rank := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rank.Path)
		if err != nil {
			return nil, err
		}
		score, err := json.Marshal(rank.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(score)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of path -> number, keeping key order as
// written in the body, integer-like keys included. A repeated key keeps
// its first position and takes the last value.
func (r *Ranking) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	out := Ranking{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var score *float64
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("score for %q: %w", key, err)
		}
		if score == nil {
			return fmt.Errorf("score for %q is null", key)
		}

		if i, dup := seen[key]; dup {
			out[i].Score = *score
			continue
		}
		seen[key] = len(out)
		out = append(out, Rank{Path: key, Score: *score})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON object")
	}

	*r = out
	return nil
}
