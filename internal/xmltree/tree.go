package xmltree

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/clbanning/mxj/v2"
)

const (
	attrPrefix = "-"
	textKey    = "#text"
)

// Tree is a decoded XML document. It is never modified after Decode returns.
type Tree struct {
	root Node
	doc  mxj.Map
}

// Name returns the root element name.
func (t *Tree) Name() string {
	if t == nil {
		return ""
	}
	return t.root.name
}

// Root returns the root element.
func (t *Tree) Root() Node {
	if t == nil {
		return Node{}
	}
	return t.root
}

// Text returns the text of the first element at path. The first path segment must name
// the root element.
func (t *Tree) Text(path string) (string, bool) {
	rest, ok := t.relative(path)
	if !ok {
		return "", false
	}
	return t.root.Text(rest)
}

// Has reports whether at least one element exists at path.
func (t *Tree) Has(path string) bool {
	return len(t.All(path)) > 0
}

// All returns every element at path, in document order for repeated siblings.
func (t *Tree) All(path string) []Node {
	rest, ok := t.relative(path)
	if !ok {
		return nil
	}
	return t.root.All(rest)
}

// Query evaluates a JSONPath expression against the map form of the document.
func (t *Tree) Query(expr string) (interface{}, error) {
	if t == nil {
		return nil, fmt.Errorf("query %q: empty tree", expr)
	}
	return jsonpath.Get(expr, map[string]interface{}(t.doc))
}

// Map returns a deep copy of the document in map form. Repeated elements are slices,
// attributes are keys prefixed with "-" and mixed text is stored under "#text".
func (t *Tree) Map() map[string]interface{} {
	if t == nil {
		return nil
	}
	out, _ := deepCopy(map[string]interface{}(t.doc)).(map[string]interface{})
	return out
}

// String renders the document as indented XML.
func (t *Tree) String() string {
	if t == nil {
		return ""
	}
	b, err := t.doc.XmlIndent("", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(t.doc))
	}
	return string(b)
}

func (t *Tree) relative(path string) (string, bool) {
	if t == nil {
		return "", false
	}
	path = strings.Trim(path, "/")
	head, rest, _ := strings.Cut(path, "/")
	if head != t.root.name {
		return "", false
	}
	return rest, true
}

// Node is one element of a Tree.
type Node struct {
	name  string
	value interface{}
}

// Name returns the element name.
func (n Node) Name() string { return n.name }

// Text returns the text of the first element at path relative to n; an empty path
// addresses n itself. Elements that only hold children or attributes have empty text.
func (n Node) Text(path string) (string, bool) {
	nodes := n.All(path)
	if len(nodes) == 0 {
		return "", false
	}
	return textOf(nodes[0].value), true
}

// Has reports whether at least one element exists at path relative to n.
func (n Node) Has(path string) bool {
	return len(n.All(path)) > 0
}

// All returns every element at path relative to n.
func (n Node) All(path string) []Node {
	if n.name == "" {
		return nil
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return []Node{n}
	}

	cur := []Node{n}
	for _, seg := range strings.Split(path, "/") {
		var next []Node
		for _, c := range cur {
			m, ok := c.value.(map[string]interface{})
			if !ok {
				continue
			}
			child, ok := m[seg]
			if !ok {
				continue
			}
			if list, ok := child.([]interface{}); ok {
				for _, v := range list {
					next = append(next, Node{name: seg, value: v})
				}
				continue
			}
			next = append(next, Node{name: seg, value: child})
		}
		if len(next) == 0 {
			return nil
		}
		cur = next
	}
	return cur
}

// Attr returns the value of attribute name on n.
func (n Node) Attr(name string) (string, bool) {
	m, ok := n.value.(map[string]interface{})
	if !ok {
		return "", false
	}
	v, ok := m[attrPrefix+name]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

func textOf(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]interface{}:
		if s, ok := x[textKey]; ok {
			return fmt.Sprint(s)
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func deepCopy(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[k] = deepCopy(e)
		}
		return out
	case mxj.Map:
		return deepCopy(map[string]interface{}(x))
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return x
	}
}
