package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanking_UnmarshalKeepsOrder(t *testing.T) {
	var r Ranking
	require.NoError(t, json.Unmarshal([]byte(`{"z.txt": 1, "a.txt": 3.5, "m.txt": 2}`), &r))

	assert.Equal(t, Ranking{
		{Path: "z.txt", Score: 1},
		{Path: "a.txt", Score: 3.5},
		{Path: "m.txt", Score: 2},
	}, r)
}

func TestRanking_UnmarshalDuplicateKey(t *testing.T) {
	var r Ranking
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 7}`), &r))

	assert.Equal(t, Ranking{{Path: "a", Score: 7}, {Path: "b", Score: 2}}, r)
}

func TestRanking_TiesKeepBodyOrderForNumericKeys(t *testing.T) {
	var r Ranking
	require.NoError(t, json.Unmarshal([]byte(`{"b.xhtml": 1, "2": 1, "1": 1}`), &r))

	assert.Equal(t, []string{"b.xhtml", "2", "1"}, paths(r.Top(20)))
}

func TestRanking_UnmarshalEmptyObject(t *testing.T) {
	var r Ranking
	require.NoError(t, json.Unmarshal([]byte(`{}`), &r))
	assert.Empty(t, r)
}

func TestRanking_UnmarshalRejects(t *testing.T) {
	inputs := map[string]string{
		"not json":     `<html>oops</html>`,
		"array":        `[1, 2]`,
		"string score": `{"a": "high"}`,
		"null score":   `{"a": null}`,
		"nested":       `{"a": {"b": 1}}`,
		"number":       `42`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var r Ranking
			assert.Error(t, json.Unmarshal([]byte(input), &r))
		})
	}
}

func TestRanking_MarshalKeepsOrder(t *testing.T) {
	r := Ranking{{Path: "b.xhtml", Score: 0.25}, {Path: "a.xhtml", Score: 0.125}}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b.xhtml":0.25,"a.xhtml":0.125}`, string(data))

	var back Ranking
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestRanking_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Ranking(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestRanking_TopStableDescending(t *testing.T) {
	r := Ranking{
		{Path: "a.txt", Score: 2},
		{Path: "b.txt", Score: 5.1234},
		{Path: "c.txt", Score: 5.1234},
	}

	top := r.Top(20)
	assert.Equal(t, []string{"b.txt", "c.txt", "a.txt"}, paths(top))
	// the receiver is left untouched
	assert.Equal(t, "a.txt", r[0].Path)
}

func TestRanking_TopTruncates(t *testing.T) {
	r := make(Ranking, 0, 25)
	for i := 0; i < 25; i++ {
		r = append(r, Rank{Path: string(rune('a' + i)), Score: float64(i)})
	}

	top := r.Top(20)
	require.Len(t, top, 20)
	assert.Equal(t, 24.0, top[0].Score)
	assert.Equal(t, 5.0, top[19].Score)
}

func TestModel_RebuildDocFreq(t *testing.T) {
	m := NewModel()
	m.Docs["a"] = Document{Path: "a", Terms: TermFreq{"GO": 3, "RUST": 1}}
	m.Docs["b"] = Document{Path: "b", Terms: TermFreq{"GO": 1}}

	m.RebuildDocFreq()

	assert.Equal(t, DocFreq{"GO": 2, "RUST": 1}, m.DocFreq)
	assert.Equal(t, 4, m.Docs["a"].Total())
}

func paths(r Ranking) []string {
	out := make([]string, len(r))
	for i, rank := range r {
		out[i] = rank.Path
	}
	return out
}
