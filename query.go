package minidom

import (
	"sort"
	"strings"
)

// Query selects elements of a Document with a reduced selector syntax:
// compound qualifiers (tag, .class, #id, *) joined by descendant (space)
// or child (>) combinators.
type Query struct {
	doc    *Document
	query  string
	scope  []NodeID
	scoped bool
	ids    []NodeID
	done   bool
}

type queryStep struct {
	child      bool
	qualifiers []string
}

func (d *Document) Query(query string) *Query {
	return &Query{doc: d, query: query}
}

// Query narrows q to the descendants of its current matches.
func (q *Query) Query(query string) *Query {
	return &Query{doc: q.doc, query: query, scope: q.Get(), scoped: true}
}

// Get returns the matching node ids in document order.
func (q *Query) Get() []NodeID {
	if !q.done {
		q.ids = q.execute()
		q.done = true
	}

	return q.ids
}

func (q *Query) First() NodeID {
	if ids := q.Get(); len(ids) > 0 {
		return ids[0]
	}

	return NoNode
}

func (q *Query) Last() NodeID {
	if ids := q.Get(); len(ids) > 0 {
		return ids[len(ids)-1]
	}

	return NoNode
}

func (q *Query) execute() []NodeID {
	if q.doc == nil {
		return nil
	}

	steps := parseQuery(q.query)

	if len(steps) == 0 {
		return nil
	}

	tags := q.scope
	document := !q.scoped

	for i, step := range steps {
		var candidates []NodeID

		switch {
		case i == 0 && document && step.child:
			candidates = []NodeID{q.doc.root}
		case i == 0 && document:
			candidates = make([]NodeID, q.doc.Len())
			for id := range candidates {
				candidates[id] = NodeID(id)
			}
		case step.child:
			for _, id := range tags {
				candidates = append(candidates, q.doc.nodes[id].Children...)
			}
		default:
			candidates = q.doc.descendants(tags)
		}

		tags = tags[:0:0]

		for _, id := range candidates {
			if matchQualifiers(step.qualifiers, &q.doc.nodes[id]) {
				tags = append(tags, id)
			}
		}

		if len(tags) == 0 {
			return nil
		}
	}

	return tags
}

// descendants collects the strict descendants of every id, deduplicated and
// sorted. Arena ids are assigned in document order.
func (d *Document) descendants(ids []NodeID) []NodeID {
	seen := make(map[NodeID]struct{})
	var result []NodeID

	for _, id := range ids {
		d.Walk(id, func(c NodeID, depth int) bool {
			if depth == 0 {
				return true
			}

			if _, ok := seen[c]; ok {
				return false
			}

			seen[c] = struct{}{}
			result = append(result, c)

			return true
		})
	}

	sort.Slice(result, func(a, b int) bool { return result[a] < result[b] })

	return result
}

// parseQuery returns nil for an empty or malformed query.
func parseQuery(query string) []queryStep {
	var steps []queryStep

	child := false
	length := len(query)

	for i := 0; i < length; {
		switch query[i] {
		case ' ', '\t', '\n':
			i++
			continue
		case '>':
			if child {
				return nil
			}

			child = true
			i++
			continue
		}

		qualifiers, next := parseQualifiers(query, i)

		if qualifiers == nil {
			return nil
		}

		steps = append(steps, queryStep{child: child, qualifiers: qualifiers})
		child = false
		i = next
	}

	if child {
		return nil
	}

	return steps
}

func parseQualifiers(query string, i int) ([]string, int) {
	var qualifiers []string

	length := len(query)

	for i < length && query[i] != ' ' && query[i] != '>' && query[i] != '\t' && query[i] != '\n' {
		start := i

		if query[i] == '*' {
			qualifiers = append(qualifiers, "*")
			i++
			continue
		}

		if query[i] == '.' || query[i] == '#' {
			i++
		}

		i = getQualifier(query, i)

		if i == start || (i == start+1 && !isValidQualifierChar(query[start])) {
			return nil, i
		}

		qualifiers = append(qualifiers, query[start:i])
	}

	return qualifiers, i
}

func getQualifier(query string, i int) int {
	for ; i < len(query) && isValidQualifierChar(query[i]); i++ {
	}

	return i
}

func isValidQualifierChar(c uint8) bool {
	return ('0' <= c && c <= '9') ||
		('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z') ||
		c == '-' || c == '_' || c == ':'
}

func matchQualifiers(qualifiers []string, n *Node) bool {
	if n.Type != ElementNode {
		return false
	}

	for _, qualifier := range qualifiers {
		switch qualifier[0] {
		case '*':
		case '.':
			if !hasClass(n, qualifier[1:]) {
				return false
			}
		case '#':
			if id, _ := n.Attr("id"); id != qualifier[1:] {
				return false
			}
		default:
			if n.Tag != qualifier {
				return false
			}
		}
	}

	return true
}

func hasClass(n *Node, class string) bool {
	for _, a := range n.Attributes {
		if a.Key != "class" {
			continue
		}

		for _, c := range strings.Fields(a.Value) {
			if c == class {
				return true
			}
		}
	}

	return false
}

// First returns the first element named name in document order.
func (d *Document) First(name string) NodeID {
	for id := range d.nodes {
		if n := &d.nodes[id]; n.Type == ElementNode && n.Tag == name {
			return NodeID(id)
		}
	}

	return NoNode
}

// Filter returns every element named name in document order.
func (d *Document) Filter(name string) []NodeID {
	var ids []NodeID

	for id := range d.nodes {
		if n := &d.nodes[id]; n.Type == ElementNode && n.Tag == name {
			ids = append(ids, NodeID(id))
		}
	}

	return ids
}

// FindAll returns the descendants of id named name.
func (d *Document) FindAll(id NodeID, name string) []NodeID {
	var ids []NodeID

	if d.Node(id) == nil {
		return nil
	}

	for _, c := range d.nodes[id].Children {
		if n := &d.nodes[c]; n.Type == ElementNode && n.Tag == name {
			ids = append(ids, c)
		}

		ids = append(ids, d.FindAll(c, name)...)
	}

	return ids
}

// InnerText returns the raw source between the opening and closing tag of
// an element, or "" when the element was never closed.
func (d *Document) InnerText(id NodeID) string {
	n := d.Node(id)

	if n == nil || n.Body.End == -1 || n.Body.Start > n.Body.End {
		return ""
	}

	return d.source[n.Body.Start:n.Body.End]
}

// Text joins the text runs below id with single spaces.
func (d *Document) Text(id NodeID) string {
	var parts []string

	d.Walk(id, func(c NodeID, _ int) bool {
		if n := &d.nodes[c]; n.Type == TextNode {
			if v := n.Text(); v != "" {
				parts = append(parts, v)
			}
		}

		return true
	})

	return strings.Join(parts, " ")
}
