// Package xmlutil 把简单 XML 报文（如支付回调）转换为 map.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

type node struct {
	name     string
	text     strings.Builder
	children []*node
}

// ToMap 把根元素的子元素转换为嵌套 map：叶子节点为文本，非叶子节点为下一层 map.
// 同名兄弟节点后出现的覆盖先出现的.
func ToMap(data []byte) (map[string]interface{}, error) {
	root, err := parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return toMap(root.children), nil
}

// FlatMap 读取 r 并返回根元素下一层子元素的 名称->文本.
func FlatMap(r io.Reader) (map[string]string, error) {
	root, err := parse(r)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(root.children))
	for _, c := range root.children {
		out[c.name] = c.text.String()
	}
	return out, nil
}

func toMap(nodes []*node) map[string]interface{} {
	m := make(map[string]interface{}, len(nodes))
	for _, n := range nodes {
		if len(n.children) > 0 {
			m[n.name] = toMap(n.children)
		} else {
			m[n.name] = n.text.String()
		}
	}
	return m
}

func parse(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var stack []*node
	var root *node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapC(err, code.ErrDecodingFailed, "parse xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.WithCode(code.ErrDecodingFailed, "xml has more than one root element")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.WithCode(code.ErrDecodingFailed, "xml has no root element")
	}
	return root, nil
}
