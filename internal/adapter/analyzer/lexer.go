package analyzer

import (
	"strings"
	"unicode"
)

// Lexer splits text into terms. A run of digits is one term, a letter
// followed by letters or digits is one term, and any other non-space rune
// is a term on its own.
type Lexer struct {
	content []rune
}

func NewLexer(text string) *Lexer {
	return &Lexer{content: []rune(text)}
}

func (l *Lexer) trimLeft() {
	for len(l.content) > 0 && unicode.IsSpace(l.content[0]) {
		l.content = l.content[1:]
	}
}

func (l *Lexer) take(n int) string {
	token := string(l.content[:n])
	l.content = l.content[n:]
	return token
}

func (l *Lexer) takeWhile(pred func(rune) bool) string {
	n := 0
	for n < len(l.content) && pred(l.content[n]) {
		n++
	}
	return l.take(n)
}

// Next returns the next term, or false once the input is exhausted.
func (l *Lexer) Next() (string, bool) {
	l.trimLeft()
	if len(l.content) == 0 {
		return "", false
	}

	switch first := l.content[0]; {
	case unicode.IsNumber(first):
		return l.takeWhile(unicode.IsNumber), true
	case isAlphabetic(first):
		return l.takeWhile(isAlphanumeric), true
	default:
		return l.take(1), true
	}
}

// isAlphabetic reports the Unicode Alphabetic property: letters plus the
// combining marks that belong to words, such as Indic vowel signs.
func isAlphabetic(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_Alphabetic, r)
}

func isAlphanumeric(r rune) bool {
	return isAlphabetic(r) || unicode.IsNumber(r)
}

// Tokenizer adapts Lexer to port.Tokenizer.
type Tokenizer struct {
	normalizeCase bool
}

// NewTokenizer creates a Tokenizer. With normalizeCase every term is
// upper-cased so that matching ignores case.
func NewTokenizer(normalizeCase bool) *Tokenizer {
	return &Tokenizer{normalizeCase: normalizeCase}
}

// Tokenize returns the terms of text in order, duplicates included.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	lexer := NewLexer(text)
	for {
		token, ok := lexer.Next()
		if !ok {
			break
		}
		if t.normalizeCase {
			token = strings.ToUpper(token)
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// TermFreq counts the terms of text.
func (t *Tokenizer) TermFreq(text string) map[string]int {
	tf := make(map[string]int)
	for _, token := range t.Tokenize(text) {
		tf[token]++
	}
	return tf
}
