package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	xmlHeader    = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// xmlNode is a minimal element tree. Built documents carry prefixed local
// names ("w:p") with an empty Space; parsed documents carry resolved spaces.
type xmlNode struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
	IsText   bool
}

// el creates an element from a prefixed name and attribute pairs.
func el(name string, attrs ...string) *xmlNode {
	node := &xmlNode{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attr = append(node.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return node
}

func text(value string) *xmlNode {
	return &xmlNode{IsText: true, Text: value}
}

func (n *xmlNode) add(children ...*xmlNode) *xmlNode {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

func encodeXMLDocument(root *xmlNode) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	encoder := xml.NewEncoder(&buf)
	if err := encodeXMLNode(encoder, root); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXMLNode(encoder *xml.Encoder, node *xmlNode) error {
	if node.IsText {
		return encoder.EncodeToken(xml.CharData([]byte(node.Text)))
	}
	start := xml.StartElement{Name: node.Name, Attr: node.Attr}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}

func parseXMLDocument(raw []byte) (*xmlNode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var stack []*xmlNode
	var root *xmlNode

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &xmlNode{Name: t.Name, Attr: t.Attr}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 || len(t) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, text(string(t)))
		}
	}

	if root == nil {
		return nil, errors.New("document.xml has no root element")
	}
	return root, nil
}

func walkXML(node *xmlNode, visit func(*xmlNode) bool) bool {
	if node == nil {
		return true
	}
	if !visit(node) {
		return false
	}
	for _, child := range node.Children {
		if !walkXML(child, visit) {
			return false
		}
	}
	return true
}

func isElement(node *xmlNode, local string) bool {
	if node == nil || node.IsText {
		return false
	}
	if node.Name.Space == wmlNamespace {
		return node.Name.Local == local
	}
	return node.Name.Space == "" && (node.Name.Local == local || node.Name.Local == "w:"+local)
}

// paragraphText concatenates the text runs of p, turning breaks into newlines.
func paragraphText(p *xmlNode) string {
	var builder strings.Builder
	walkXML(p, func(n *xmlNode) bool {
		switch {
		case isElement(n, "t"):
			for _, child := range n.Children {
				if child.IsText {
					builder.WriteString(child.Text)
				}
			}
		case isElement(n, "br"):
			builder.WriteByte('\n')
		}
		return true
	})
	return builder.String()
}

func firstLines(text string, count int) string {
	if count <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > count {
		lines = lines[:count]
	}
	return strings.Join(lines, "\n")
}
