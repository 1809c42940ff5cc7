package minidom

import "fmt"

// TokenType identifies the kind of a markup Token.
type TokenType int

const (
	EOFToken TokenType = iota
	TextToken
	TagOpenToken
	AttrToken
	TagOpenEndToken
	TagCloseToken
)

var tokenNames = [...]string{
	EOFToken:        "EOF",
	TextToken:       "Text",
	TagOpenToken:    "TagOpen",
	AttrToken:       "Attr",
	TagOpenEndToken: "TagOpenEnd",
	TagCloseToken:   "TagClose",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one event of the markup stream.
//
// Data holds the trimmed text of a TextToken, the tag name of TagOpen and
// TagClose, and the key of an AttrToken. Value is only set for AttrToken.
// Offset is the byte span the token was scanned from.
type Token struct {
	Type   TokenType
	Data   string
	Value  string
	Offset Offset
}

func (t Token) String() string {
	switch t.Type {
	case TextToken, TagOpenToken, TagCloseToken:
		return fmt.Sprintf("%s(%q)", t.Type, t.Data)
	case AttrToken:
		return fmt.Sprintf("%s(%q, %q)", t.Type, t.Data, t.Value)
	}

	return t.Type.String()
}
