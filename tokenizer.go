package minidom

import (
	"iter"
	"strings"

	"go.uber.org/zap"
)

// Tokenizer splits markup into a forward-only stream of Tokens. It cannot
// be rewound; create a new one to scan the same input again.
type Tokenizer struct {
	body     string
	index    int
	inTag    bool
	tagStart int
	logger   *zap.Logger
}

func NewTokenizer(body string, opts ...Option) *Tokenizer {
	return newTokenizer(body, newConfig(opts).logger)
}

func newTokenizer(body string, logger *zap.Logger) *Tokenizer {
	return &Tokenizer{body: body, logger: logger}
}

// Next returns the next token. Once the input is exhausted every call
// returns an EOFToken.
func (t *Tokenizer) Next() Token {
	if t.inTag {
		return t.nextAttribute()
	}

	for t.inBound(t.index) {
		start := t.index
		end := strings.IndexByte(t.body[start:], '<')

		if end == -1 {
			end = len(t.body)
		} else {
			end += start
		}

		t.index = end

		if text := strings.TrimSpace(t.body[start:end]); text != "" {
			return Token{Type: TextToken, Data: text, Offset: Offset{start, end}}
		}

		if t.inBound(t.index) {
			return t.openTag()
		}
	}

	return Token{Type: EOFToken, Offset: Offset{len(t.body), len(t.body)}}
}

// All ranges over the remaining tokens, stopping before EOF.
func (t *Tokenizer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for tok := t.Next(); tok.Type != EOFToken; tok = t.Next() {
			if !yield(tok) {
				return
			}
		}
	}
}

func (t *Tokenizer) inBound(index int) bool {
	return index < len(t.body)
}

func (t *Tokenizer) isWhitespace(index int) bool {
	switch t.body[index] {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}

	return false
}

func (t *Tokenizer) skipWhitespace() {
	for t.inBound(t.index) && t.isWhitespace(t.index) {
		t.index++
	}
}

// openTag scans from the '<' at t.index through the tag name.
func (t *Tokenizer) openTag() Token {
	start := t.index
	t.index++

	nameStart := t.index

	for t.inBound(t.index) && !t.isWhitespace(t.index) && t.body[t.index] != '>' {
		t.index++
	}

	name := t.body[nameStart:t.index]

	if strings.HasPrefix(name, "/") {
		return t.closeTag(start, name[1:])
	}

	t.inTag = true
	t.tagStart = start

	return Token{Type: TagOpenToken, Data: name, Offset: Offset{start, t.index}}
}

// closeTag skips everything up to and including the next '>'.
func (t *Tokenizer) closeTag(start int, name string) Token {
	end := strings.IndexByte(t.body[t.index:], '>')

	if end == -1 {
		t.logger.Debug("unterminated closing tag",
			zap.String("tag", name), zap.Int("offset", start))
		t.index = len(t.body)
	} else {
		t.index += end + 1
	}

	return Token{Type: TagCloseToken, Data: name, Offset: Offset{start, t.index}}
}

func (t *Tokenizer) nextAttribute() Token {
	t.skipWhitespace()

	if !t.inBound(t.index) {
		t.logger.Debug("unterminated tag at end of input", zap.Int("offset", t.tagStart))
		t.inTag = false

		return Token{Type: TagOpenEndToken, Offset: Offset{t.tagStart, t.index}}
	}

	if t.body[t.index] == '>' {
		t.index++
		t.inTag = false

		return Token{Type: TagOpenEndToken, Offset: Offset{t.tagStart, t.index}}
	}

	start := t.index

	for t.inBound(t.index) &&
		!t.isWhitespace(t.index) &&
		t.body[t.index] != '=' &&
		t.body[t.index] != '>' {
		t.index++
	}

	key := t.body[start:t.index]
	value := ""

	if t.inBound(t.index) && t.body[t.index] == '=' {
		t.index++
		value = t.scanValue()
	} else {
		t.logger.Debug("attribute without value", zap.String("key", key), zap.Int("offset", start))
	}

	return Token{Type: AttrToken, Data: key, Value: value, Offset: Offset{start, t.index}}
}

func (t *Tokenizer) scanValue() string {
	if !t.inBound(t.index) {
		return ""
	}

	if literal := t.body[t.index]; literal == '"' || literal == '\'' {
		t.index++
		start := t.index
		end := strings.IndexByte(t.body[start:], literal)

		if end == -1 {
			t.logger.Debug("unterminated quoted value", zap.Int("offset", start-1))
			t.index = len(t.body)

			return t.body[start:]
		}

		t.index = start + end + 1

		return t.body[start : start+end]
	}

	start := t.index

	for t.inBound(t.index) && !t.isWhitespace(t.index) && t.body[t.index] != '>' {
		t.index++
	}

	return t.body[start:t.index]
}
