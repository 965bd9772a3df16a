// Package yamlconv converts value trees to and from YAML documents using
// gopkg.in/yaml.v3 nodes, so object member order survives in both
// directions.
package yamlconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/loosejson"
	"github.com/reoring/loosejson/internal/engine"
)

// ToYAML renders v as a YAML document.
func ToYAML(v *loosejson.Value) ([]byte, error) {
	c := &toNode{tr: engine.NewTracker(loosejson.DefaultMaxDepth), visiting: map[*loosejson.Value]struct{}{}}
	n, err := c.node(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

type toNode struct {
	tr       *engine.Tracker
	visiting map[*loosejson.Value]struct{}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (c *toNode) node(v *loosejson.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case loosejson.KindNull:
		return scalar("!!null", "null"), nil
	case loosejson.KindBool:
		b, _ := v.AsBool()
		return scalar("!!bool", strconv.FormatBool(b)), nil
	case loosejson.KindInt:
		i, _ := v.AsInt()
		return scalar("!!int", strconv.FormatInt(i, 10)), nil
	case loosejson.KindFloat:
		f, _ := v.AsFloat()
		return scalar("!!float", floatYAML(f)), nil
	case loosejson.KindString:
		s, _ := v.AsString()
		return scalar("!!str", s), nil
	case loosejson.KindArray, loosejson.KindObject:
		return c.container(v)
	}
	return nil, &loosejson.EncodeError{Code: loosejson.CodeNotEncodable, Message: "object is not JSON encodable", Path: c.tr.Pointer()}
}

func (c *toNode) container(v *loosejson.Value) (*yaml.Node, error) {
	if _, seen := c.visiting[v]; seen {
		return nil, &loosejson.EncodeError{
			Code:    loosejson.CodeSelfReference,
			Message: "an " + v.Kind().String() + " with references to itself is not JSON encodable",
			Path:    c.tr.Pointer(),
		}
	}
	if !c.tr.Enter() {
		c.tr.Leave()
		return nil, &loosejson.EncodeError{
			Code:    loosejson.CodeMaxDepth,
			Message: fmt.Sprintf("maximum nesting depth of %d exceeded", c.tr.MaxDepth),
			Path:    c.tr.Pointer(),
		}
	}
	c.visiting[v] = struct{}{}
	defer func() {
		delete(c.visiting, v)
		c.tr.Leave()
	}()

	if v.Kind() == loosejson.KindArray {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, it := range v.Items() {
			c.tr.PushIndex(i)
			n, err := c.node(it)
			c.tr.Pop()
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, mem := range v.Members() {
		c.tr.PushKey(mem.Key)
		n, err := c.node(mem.Value)
		c.tr.Pop()
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, scalar("!!str", mem.Key), n)
	}
	return m, nil
}

func floatYAML(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Alias expansion may build at most expansionRatio nodes per node of the
// source document, and never fewer than expansionFloor.
const (
	expansionRatio = 64
	expansionFloor = 100000
)

// FromYAML reads the first document of b. Mapping keys are taken as their
// scalar text; anchors and aliases are expanded up to a node budget derived
// from the document size. An empty document is null.
func FromYAML(b []byte) (*loosejson.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return loosejson.Null(), nil
	}
	c := &fromNode{
		tr:     engine.NewTracker(loosejson.DefaultMaxDepth),
		budget: max(countNodes(&doc)*expansionRatio, expansionFloor),
	}
	return c.value(doc.Content[0])
}

// countNodes counts the nodes written in the source, without following
// aliases.
func countNodes(n *yaml.Node) int {
	total := 1
	for _, ch := range n.Content {
		total += countNodes(ch)
	}
	return total
}

type fromNode struct {
	tr     *engine.Tracker
	built  int
	budget int
}

func (c *fromNode) value(n *yaml.Node) (*loosejson.Value, error) {
	c.built++
	if c.built > c.budget {
		return nil, c.errorf("alias expansion exceeds %d nodes", c.budget)
	}
	switch n.Kind {
	case yaml.AliasNode:
		if !c.tr.Enter() {
			c.tr.Leave()
			return nil, c.errorf("alias expansion exceeds depth %d", c.tr.MaxDepth)
		}
		defer c.tr.Leave()
		return c.value(n.Alias)
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return loosejson.Null(), nil
		}
		return c.value(n.Content[0])
	case yaml.SequenceNode:
		if !c.tr.Enter() {
			c.tr.Leave()
			return nil, c.errorf("maximum nesting depth of %d exceeded", c.tr.MaxDepth)
		}
		defer c.tr.Leave()
		arr := loosejson.Array()
		for i, it := range n.Content {
			c.tr.PushIndex(i)
			v, err := c.value(it)
			c.tr.Pop()
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case yaml.MappingNode:
		if !c.tr.Enter() {
			c.tr.Leave()
			return nil, c.errorf("maximum nesting depth of %d exceeded", c.tr.MaxDepth)
		}
		defer c.tr.Leave()
		obj := loosejson.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, c.errorf("line %d: mapping key is not a scalar", k.Line)
			}
			c.tr.PushKey(k.Value)
			v, err := c.value(n.Content[i+1])
			c.tr.Pop()
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return c.scalar(n)
	}
	return nil, c.errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func (c *fromNode) scalar(n *yaml.Node) (*loosejson.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return loosejson.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, c.errorf("line %d: %v", n.Line, err)
		}
		return loosejson.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return loosejson.Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, c.errorf("line %d: %v", n.Line, err)
		}
		return loosejson.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, c.errorf("line %d: %v", n.Line, err)
		}
		return loosejson.Float(f), nil
	}
	return loosejson.String(n.Value), nil
}

func (c *fromNode) errorf(format string, args ...any) error {
	return fmt.Errorf("yamlconv: %s at %s", fmt.Sprintf(format, args...), c.tr.Pointer())
}
