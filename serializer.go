package rest

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// Format tokens. A token names a wire format internally, independent of how
// the caller asked for it (query override or Accept header).
const (
	FormatJSON  = "application/json"
	FormatJSONP = "text/javascript"
	FormatXML   = "application/xml"
	FormatYAML  = "text/yaml"
	FormatHTML  = "text/html"
)

// Serializer encodes structured data to bytes for a format token and
// decodes request bodies back into structured data. Encode returning an
// error for a token it does not recognize is not fatal to a request: the
// dispatch layer falls back to the default JSON token.
type Serializer interface {
	// Formats lists the tokens this serializer can encode.
	Formats() []string

	Encode(format string, v any) ([]byte, error)
	Decode(format string, data []byte) (Dict, error)
}

// DefaultSerializer handles JSON, JSONP (JSON payload, wrapped by the
// dispatcher), XML, and YAML. HTML rendering is deliberately absent — a
// negotiated text/html token without a custom serializer falls back to
// JSON at encode time.
type DefaultSerializer struct{}

// Formats returns the supported format tokens.
func (DefaultSerializer) Formats() []string {
	return []string{FormatJSON, FormatJSONP, FormatXML, FormatYAML}
}

// Encode serializes v for the given format token.
func (s DefaultSerializer) Encode(format string, v any) ([]byte, error) {
	switch format {
	case FormatJSON, FormatJSONP:
		return json.Marshal(v)
	case FormatXML:
		return encodeXML(v)
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Decode parses a request body for the given format token. JSONP bodies do
// not exist on the request side; the token decodes as JSON.
func (s DefaultSerializer) Decode(format string, data []byte) (Dict, error) {
	switch format {
	case FormatJSON, FormatJSONP:
		var d Dict
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case FormatXML:
		return decodeXML(data)
	case FormatYAML:
		var d Dict
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// encodeXML builds an XML document from dynamic structured data. The root
// element is <response>; list members become <object> children.
func encodeXML(v any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("response")
	xmlValue(root, v)
	doc.Indent(2)
	return doc.WriteToBytes()
}

func xmlValue(parent *etree.Element, v any) {
	switch val := v.(type) {
	case Dict:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			xmlValue(parent.CreateElement(k), val[k])
		}
	case map[string]any:
		xmlValue(parent, Dict(val))
	case []Dict:
		for _, item := range val {
			xmlValue(parent.CreateElement("object"), item)
		}
	case []any:
		for _, item := range val {
			xmlValue(parent.CreateElement("object"), item)
		}
	case nil:
	default:
		parent.SetText(fmt.Sprint(val))
	}
}

// decodeXML is the inverse of encodeXML for flat and nested documents.
// Leaf values come back as strings; repeated <object> children come back
// as a list.
func decodeXML(data []byte) (Dict, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("xml document has no root element")
	}
	v := xmlElement(root)
	d, ok := v.(Dict)
	if !ok {
		return nil, fmt.Errorf("xml root holds no fields")
	}
	return d, nil
}

func xmlElement(el *etree.Element) any {
	children := el.ChildElements()
	if len(children) == 0 {
		return el.Text()
	}
	if slices.ContainsFunc(children, func(c *etree.Element) bool { return c.Tag == "object" }) {
		list := make([]any, 0, len(children))
		for _, c := range children {
			list = append(list, xmlElement(c))
		}
		return list
	}
	d := make(Dict, len(children))
	for _, c := range children {
		d[c.Tag] = xmlElement(c)
	}
	return d
}
