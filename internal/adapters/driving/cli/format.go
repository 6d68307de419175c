package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docview/internal/core/domain"
)

// Output formats for document listings.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// encodeDocuments renders documents as JSON or YAML, keeping field order.
func encodeDocuments(format string, docs []domain.Document) ([]byte, error) {
	if docs == nil {
		docs = []domain.Document{}
	}

	switch format {
	case formatJSON:
		return json.MarshalIndent(docs, "", "  ")
	case formatYAML:
		return yaml.Marshal(documentsNode(docs))
	}
	return nil, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
}

func documentsNode(docs []domain.Document) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, doc := range docs {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				scalarNode("!!str", "id"), scalarNode("!!str", doc.ID),
				scalarNode("!!str", "fields"), fieldsNode(doc.Fields),
			},
		})
	}
	return seq
}

func fieldsNode(f domain.Fields) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	f.Each(func(name string, v domain.Value) {
		node.Content = append(node.Content, scalarNode("!!str", name), valueNode(v))
	})
	return node
}

func valueNode(v domain.Value) *yaml.Node {
	switch v.Kind() {
	case domain.KindString:
		s, _ := v.AsString()
		return scalarNode("!!str", s)
	case domain.KindInteger:
		i, _ := v.AsInteger()
		return scalarNode("!!int", strconv.FormatInt(i, 10))
	case domain.KindDouble:
		f, _ := v.AsDouble()
		return scalarNode("!!float", yamlFloat(f))
	case domain.KindBoolean:
		b, _ := v.AsBool()
		return scalarNode("!!bool", strconv.FormatBool(b))
	case domain.KindTimestamp:
		t, _ := v.AsTimestamp()
		return scalarNode("!!timestamp", t.Format(time.RFC3339Nano))
	case domain.KindBytes:
		return scalarNode("!!binary", v.String())
	case domain.KindReference:
		ref, _ := v.AsReference()
		return scalarNode("!!str", ref)
	case domain.KindGeoPoint:
		lat, lng, _ := v.AsGeoPoint()
		return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			scalarNode("!!str", "latitude"), scalarNode("!!float", yamlFloat(lat)),
			scalarNode("!!str", "longitude"), scalarNode("!!float", yamlFloat(lng)),
		}}
	case domain.KindMap:
		m, _ := v.AsMap()
		return fieldsNode(m)
	case domain.KindArray:
		items, _ := v.AsArray()
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range items {
			seq.Content = append(seq.Content, valueNode(item))
		}
		return seq
	}
	return scalarNode("!!null", "null")
}

func yamlFloat(f float64) string {
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

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// parseAssignments reads key=value arguments in order.
func parseAssignments(args []string) ([]domain.DraftField, error) {
	out := make([]domain.DraftField, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, arg)
		}
		out = append(out, domain.DraftField{Name: name, Value: value})
	}
	return out, nil
}
