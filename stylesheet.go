package minidom

import (
	"iter"
	"strings"

	"go.uber.org/zap"
)

// Stylesheet is the flat rule list produced by ParseStylesheet.
type Stylesheet struct {
	Rules []Rule
}

// Rule binds a selector group to its declarations. Selectors are kept as
// raw text; no selector semantics are applied.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

type Declaration struct {
	Property string
	Value    string
}

// RulesBySelector returns the rules whose group contains selector verbatim.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var rules []Rule

	for _, r := range s.Rules {
		for _, sel := range r.Selectors {
			if sel == selector {
				rules = append(rules, r)
				break
			}
		}
	}

	return rules
}

// Value returns the first declared value for property.
func (r *Rule) Value(property string) (string, bool) {
	for _, d := range r.Declarations {
		if d.Property == property {
			return d.Value, true
		}
	}

	return "", false
}

type StyleTokenType int

const (
	StyleEOFToken StyleTokenType = iota
	SelectorToken
	BlockToken
)

// StyleToken carries the trimmed selector text before a '{' or the raw
// content of a declaration block.
type StyleToken struct {
	Type   StyleTokenType
	Data   string
	Offset Offset
}

// StyleTokenizer alternates between selector text and declaration blocks.
// Blocks do not nest: the first '}' closes the open block.
type StyleTokenizer struct {
	body    string
	index   int
	inBlock bool
	logger  *zap.Logger
}

func NewStyleTokenizer(body string, opts ...Option) *StyleTokenizer {
	return &StyleTokenizer{body: body, logger: newConfig(opts).logger}
}

func (t *StyleTokenizer) Next() StyleToken {
	if t.index >= len(t.body) && !t.inBlock {
		return StyleToken{Type: StyleEOFToken, Offset: Offset{len(t.body), len(t.body)}}
	}

	if t.inBlock {
		return t.block()
	}

	start := t.index
	end := strings.IndexByte(t.body[start:], '{')

	if end == -1 {
		if rest := strings.TrimSpace(t.body[start:]); rest != "" {
			t.logger.Debug("selector without declaration block discarded",
				zap.String("selector", rest), zap.Int("offset", start))
		}

		t.index = len(t.body)

		return StyleToken{Type: StyleEOFToken, Offset: Offset{len(t.body), len(t.body)}}
	}

	t.index = start + end + 1
	t.inBlock = true

	return StyleToken{
		Type:   SelectorToken,
		Data:   strings.TrimSpace(t.body[start : start+end]),
		Offset: Offset{start, start + end},
	}
}

func (t *StyleTokenizer) block() StyleToken {
	start := t.index
	end := strings.IndexByte(t.body[start:], '}')
	t.inBlock = false

	if end == -1 {
		t.logger.Debug("unterminated declaration block", zap.Int("offset", start-1))
		t.index = len(t.body)

		return StyleToken{Type: BlockToken, Data: t.body[start:], Offset: Offset{start, -1}}
	}

	t.index = start + end + 1

	return StyleToken{Type: BlockToken, Data: t.body[start : start+end], Offset: Offset{start, start + end}}
}

// All ranges over the remaining tokens, stopping before EOF.
func (t *StyleTokenizer) All() iter.Seq[StyleToken] {
	return func(yield func(StyleToken) bool) {
		for tok := t.Next(); tok.Type != StyleEOFToken; tok = t.Next() {
			if !yield(tok) {
				return
			}
		}
	}
}

// ParseStylesheet splits body into rules. Like ParseMarkup it never fails;
// comments and at-rules are read as ordinary selector or declaration text.
func ParseStylesheet(body string, opts ...Option) *Stylesheet {
	logger := newConfig(opts).logger
	t := &StyleTokenizer{body: body, logger: logger}
	sheet := &Stylesheet{}

	var selectors []string

	for tok := range t.All() {
		switch tok.Type {
		case SelectorToken:
			selectors = splitSelectors(tok.Data)
		case BlockToken:
			sheet.Rules = append(sheet.Rules, Rule{
				Selectors:    selectors,
				Declarations: splitDeclarations(tok.Data, logger),
			})
			selectors = nil
		}
	}

	return sheet
}

func splitSelectors(group string) []string {
	var selectors []string

	for _, s := range strings.Split(group, ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}

	return selectors
}

func splitDeclarations(block string, logger *zap.Logger) []Declaration {
	var declarations []Declaration

	for _, piece := range strings.Split(block, ";") {
		piece = strings.TrimSpace(piece)

		if piece == "" {
			continue
		}

		property, value, found := strings.Cut(piece, ":")

		if !found {
			logger.Debug("declaration without value", zap.String("property", piece))
		}

		declarations = append(declarations, Declaration{
			Property: strings.TrimSpace(property),
			Value:    strings.TrimSpace(value),
		})
	}

	return declarations
}
