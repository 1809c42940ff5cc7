package minidom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Node ids in creation order:
// html0 head1 meta2 body3 div4 p5 text6 span7 p8 text9 p10 text11
const queryPage = `<html>
<head><meta property="og:title" content="T"></meta></head>
<body>
	<div id="main" class="a  b"><p class="a">one</p><span><p>two</p></span></div>
	<p>three</p>
</body>
</html>`

func TestQuery(t *testing.T) {
	doc := ParseMarkup(queryPage)

	var tests = []struct {
		query string
		out   []NodeID
	}{
		{query: "p", out: []NodeID{5, 8, 10}},
		{query: "div p", out: []NodeID{5, 8}},
		{query: "div > p", out: []NodeID{5}},
		{query: "div>p", out: []NodeID{5}},
		{query: ".a", out: []NodeID{4, 5}},
		{query: ".b.a", out: []NodeID{4}},
		{query: "p.a", out: []NodeID{5}},
		{query: "#main > span > p", out: []NodeID{8}},
		{query: "div#main span", out: []NodeID{7}},
		{query: "head > meta", out: []NodeID{2}},
		{query: "> html", out: []NodeID{0}},
		{query: "body *", out: []NodeID{4, 5, 7, 8, 10}},
		{query: "* p", out: []NodeID{5, 8, 10}},
		{query: "> body"},
		{query: "table"},
		{query: ""},
		{query: "div >"},
		{query: "div > > p"},
		{query: "p["},
		{query: "."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, doc.Query(tt.query).Get(), "query %q", tt.query)
	}
}

func TestQuery_Chained(t *testing.T) {
	doc := ParseMarkup(queryPage)

	assert.Equal(t, []NodeID{5, 8}, doc.Query("div").Query("p").Get())
	assert.Equal(t, []NodeID{8}, doc.Query("span").Query("p").Get())
	assert.Nil(t, doc.Query("table").Query("p").Get())

	q := doc.Query("p")
	assert.Equal(t, NodeID(5), q.First())
	assert.Equal(t, NodeID(10), q.Last())
	assert.Equal(t, NoNode, doc.Query("table").First())
	assert.Equal(t, NoNode, doc.Query("table").Last())
}

func TestClasses(t *testing.T) {
	doc := ParseMarkup(`<a class="a rofl lol rofl"><b class="x" class="lol"></b></a>`)

	assert.Equal(t, []NodeID{0}, doc.Query(".rofl").Get())
	assert.Equal(t, []NodeID{0, 1}, doc.Query(".lol").Get())
	assert.Nil(t, doc.Query(".ro").Get())
}

func TestDocument_Lookup(t *testing.T) {
	doc := ParseMarkup(queryPage)

	assert.Equal(t, NodeID(5), doc.First("p"))
	assert.Equal(t, NoNode, doc.First("table"))
	assert.Equal(t, []NodeID{5, 8, 10}, doc.Filter("p"))
	assert.Equal(t, []NodeID{5, 8}, doc.FindAll(4, "p"))
	assert.Nil(t, doc.FindAll(NoNode, "p"))

	assert.Equal(t, "one two", doc.Text(4))
	assert.Equal(t, "one two three", doc.Text(0))
	assert.Equal(t, "", doc.Text(2))
	assert.Equal(t, "one", doc.InnerText(5))
	assert.Equal(t, `<p class="a">one</p><span><p>two</p></span>`, doc.InnerText(4))
}
