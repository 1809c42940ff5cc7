package minidom

import (
	"go.uber.org/zap"
)

type parser struct {
	tokenizer *Tokenizer
	doc       *Document
	open      []NodeID
	pending   *Node
	logger    *zap.Logger
}

// ParseMarkup builds a Document from body. It never fails: malformed input
// yields a best-effort tree.
//
// Every opened element becomes the insertion point for what follows. A
// closing tag ascends exactly one level whatever its name, and is ignored
// at the root. Elements still open at the end of input stay open.
func ParseMarkup(body string, opts ...Option) *Document {
	logger := newConfig(opts).logger
	p := &parser{
		tokenizer: newTokenizer(body, logger),
		doc:       &Document{source: body, root: NoNode},
		logger:    logger,
	}

	p.parse()

	return p.doc
}

func (p *parser) parse() {
	for tok := range p.tokenizer.All() {
		switch tok.Type {
		case TextToken:
			p.addText(tok)
		case TagOpenToken:
			p.pending = &Node{
				Type:   ElementNode,
				Tag:    tok.Data,
				Offset: Offset{tok.Offset.Start, -1},
			}
		case AttrToken:
			if p.pending != nil {
				p.pending.Attributes = append(p.pending.Attributes, Attribute{Key: tok.Data, Value: tok.Value})
			}
		case TagOpenEndToken:
			p.openElement(tok)
		case TagCloseToken:
			p.closeElement(tok)
		}
	}

	if p.doc.root == NoNode {
		p.ensureRoot()
	}

	if depth := len(p.open) - 1; depth > 0 {
		p.logger.Debug("elements left open at end of input",
			zap.Int("depth", depth),
			zap.String("innermost", p.doc.nodes[p.current()].Tag))
	}

	p.open = nil
}

func (p *parser) current() NodeID {
	return p.open[len(p.open)-1]
}

// ensureRoot creates the untagged placeholder root used when text arrives
// before any element.
func (p *parser) ensureRoot() {
	if p.doc.root != NoNode {
		return
	}

	p.doc.root = p.doc.add(Node{Type: TextNode, Parent: NoNode, Body: Offset{0, -1}})
	p.open = append(p.open, p.doc.root)
}

func (p *parser) addText(tok Token) {
	p.ensureRoot()
	p.doc.appendChild(p.current(), Node{
		Type:       TextNode,
		Attributes: []Attribute{{Key: textKey, Value: tok.Data}},
		Offset:     tok.Offset,
		Body:       Offset{tok.Offset.End, tok.Offset.End},
	})
}

func (p *parser) openElement(tok Token) {
	n := p.pending
	p.pending = nil

	if n == nil {
		return
	}

	n.Offset.End = tok.Offset.End
	n.Body = Offset{tok.Offset.End, -1}

	if p.doc.root == NoNode {
		n.Parent = NoNode
		p.doc.root = p.doc.add(*n)
		p.open = append(p.open, p.doc.root)

		return
	}

	p.open = append(p.open, p.doc.appendChild(p.current(), *n))
}

func (p *parser) closeElement(tok Token) {
	if len(p.open) == 0 {
		p.logger.Debug("closing tag before any element",
			zap.String("tag", tok.Data), zap.Int("offset", tok.Offset.Start))
		return
	}

	n := &p.doc.nodes[p.current()]

	if n.Body.End == -1 {
		n.Body.End = tok.Offset.Start
	}

	if len(p.open) == 1 {
		p.logger.Debug("closing tag at root ignored",
			zap.String("tag", tok.Data), zap.Int("offset", tok.Offset.Start))
		return
	}

	if n.Tag != tok.Data {
		p.logger.Debug("closing tag does not match open element",
			zap.String("open", n.Tag),
			zap.String("tag", tok.Data),
			zap.Int("offset", tok.Offset.Start))
	}

	p.open = p.open[:len(p.open)-1]
}
