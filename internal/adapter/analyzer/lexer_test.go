package analyzer

import (
	"reflect"
	"testing"
)

func TestLexer_Next(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"  leading and trailing  ", []string{"leading", "and", "trailing"}},
		{"abc123 456def", []string{"abc123", "456", "def"}},
		{"func(x, y)", []string{"func", "(", "x", ",", "y", ")"}},
		{"snake_case", []string{"snake", "_", "case"}},
		{"3.14", []string{"3", ".", "14"}},
		{"naïve café", []string{"naïve", "café"}},
		{"हिंदी पाठ", []string{"हिंदी", "पाठ"}},
		{"", nil},
		{" \t\n ", nil},
	}

	for _, tt := range tests {
		var tokens []string
		lexer := NewLexer(tt.input)
		for {
			token, ok := lexer.Next()
			if !ok {
				break
			}
			tokens = append(tokens, token)
		}
		if !reflect.DeepEqual(tokens, tt.expected) {
			t.Errorf("lex(%q) = %v, want %v", tt.input, tokens, tt.expected)
		}
	}
}

func TestTokenizer_NormalizeCase(t *testing.T) {
	tok := NewTokenizer(true)

	tokens := tok.Tokenize("Linear linear LINEAR")
	for _, token := range tokens {
		if token != "LINEAR" {
			t.Errorf("expected every token to be LINEAR, got %v", tokens)
			break
		}
	}
}

func TestTokenizer_KeepCase(t *testing.T) {
	tok := NewTokenizer(false)

	tokens := tok.Tokenize("Linear linear")
	expected := []string{"Linear", "linear"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_TermFreq(t *testing.T) {
	tok := NewTokenizer(true)

	tf := tok.TermFreq("the map and The Map, again")
	if tf["THE"] != 2 {
		t.Errorf("expected THE=2, got %d", tf["THE"])
	}
	if tf["MAP"] != 2 {
		t.Errorf("expected MAP=2, got %d", tf["MAP"])
	}
	if tf[","] != 1 {
		t.Errorf("expected ,=1, got %d", tf[","])
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer(true)

	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", len(tokens))
	}
	if tf := tok.TermFreq(""); len(tf) != 0 {
		t.Errorf("expected empty term table, got %v", tf)
	}
}
