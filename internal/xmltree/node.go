// Package xmltree parses XML documents into a generic element tree.
//
// The tree keeps every repeated child element as an ordered sibling list,
// so callers never have to guess whether a tag appeared once or many
// times: All always returns a slice, First always returns the earliest
// match or nil. Character data is accumulated per element and trimmed.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Node is a single XML element with its attributes, trimmed character
// data and child elements in document order.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Parse reads an XML document and returns its root element.
func Parse(data []byte) (*Node, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader decodes an XML document from r into an element tree.
func ParseReader(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var stack []*Node
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			node := &Node{Name: tok.Name.Local}
			if len(tok.Attr) > 0 {
				node.Attrs = make(map[string]string, len(tok.Attr))
				for _, attr := range tok.Attr {
					node.Attrs[attr.Name.Local] = attr.Value
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
			text.Reset()

		case xml.CharData:
			text.Write(tok)

		case xml.EndElement:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				if len(current.Children) == 0 {
					current.Text = strings.TrimSpace(text.String())
				}
				stack = stack[:len(stack)-1]
			}
			text.Reset()
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// First returns the earliest element reached by descending path from n,
// taking the first matching child at each step. Returns nil when any
// step has no match.
func (n *Node) First(path ...string) *Node {
	current := n
	for _, name := range path {
		if current == nil {
			return nil
		}
		var next *Node
		for _, child := range current.Children {
			if child.Name == name {
				next = child
				break
			}
		}
		current = next
	}
	return current
}

// All returns every direct child of the element at path whose name
// matches the final path segment. The leading segments are resolved
// like First. Always returns a non-nil slice.
func (n *Node) All(path ...string) []*Node {
	if len(path) == 0 {
		return []*Node{}
	}

	parent := n
	if len(path) > 1 {
		parent = n.First(path[:len(path)-1]...)
	}
	if parent == nil {
		return []*Node{}
	}

	name := path[len(path)-1]
	matches := []*Node{}
	for _, child := range parent.Children {
		if child.Name == name {
			matches = append(matches, child)
		}
	}
	return matches
}

// Content returns the element's trimmed character data, or "" when the
// node is nil.
func (n *Node) Content() string {
	if n == nil {
		return ""
	}
	return n.Text
}

// TextAt returns the character data of the first element at path, or ""
// when the path does not resolve.
func (n *Node) TextAt(path ...string) string {
	return n.First(path...).Content()
}

// TextOr returns the character data of the first element at path, or
// fallback when the path does not resolve or the element is empty.
func (n *Node) TextOr(fallback string, path ...string) string {
	if value := n.TextAt(path...); value != "" {
		return value
	}
	return fallback
}

// Attr returns the named attribute of n, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}
