package minidom

// NodeID addresses a Node inside the arena of its Document.
type NodeID int

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

type NodeType int

const (
	// TextNode has no tag. A text run stores its content as a single
	// "value" attribute; the placeholder root of a document without
	// elements is a TextNode without attributes.
	TextNode NodeType = iota
	ElementNode
)

// Offset is a half-open byte range into the parsed source. End is -1
// when the range was never closed.
type Offset struct {
	Start int
	End   int
}

type Attribute struct {
	Key   string
	Value string
}

// Node is one vertex of a Document. Children are owned by the Document
// arena; Parent is only a lookup handle.
type Node struct {
	Type       NodeType
	Tag        string
	Attributes []Attribute
	Children   []NodeID
	Parent     NodeID
	Offset     Offset
	Body       Offset
}

func (n *Node) IsElement() bool {
	return n.Type == ElementNode
}

// Attr returns the first value stored under key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}

	return "", false
}

// Text returns the content of a text node.
func (n *Node) Text() string {
	if n.Type != TextNode {
		return ""
	}

	v, _ := n.Attr(textKey)
	return v
}

const textKey = "value"

// Document owns every node produced by one ParseMarkup call.
type Document struct {
	source string
	nodes  []Node
	root   NodeID
}

// Root returns the root node. It is never nil.
func (d *Document) Root() *Node {
	return &d.nodes[d.root]
}

func (d *Document) RootID() NodeID {
	return d.root
}

// Node returns the node for id or nil when id is out of range.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}

	return &d.nodes[id]
}

// Len reports the number of nodes in the document.
func (d *Document) Len() int {
	return len(d.nodes)
}

func (d *Document) Source() string {
	return d.source
}

// Walk visits id and its descendants in document order, passing the depth
// relative to id. Returning false from fn skips the subtree.
func (d *Document) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	d.walk(id, 0, fn)
}

func (d *Document) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	n := d.Node(id)

	if n == nil || !fn(id, depth) {
		return
	}

	for _, c := range n.Children {
		d.walk(c, depth+1, fn)
	}
}

func (d *Document) add(n Node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) appendChild(parent NodeID, n Node) NodeID {
	n.Parent = parent
	id := d.add(n)
	d.nodes[parent].Children = append(d.nodes[parent].Children, id)

	return id
}
