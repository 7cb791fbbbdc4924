package spotoption

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/healthimation/go-glitch/glitch"
	"golang.org/x/net/html/charset"
)

// envelopeRoot is the root element (XML) or single top-level key (JSON) wrapping
// every SpotOption response.
const envelopeRoot = "status"

// Payload is a read-only view over a decoded response envelope. Values are
// strings, json.Number or float64 numbers, map[string]interface{} groups and
// []interface{} lists.
type Payload struct {
	data   map[string]interface{}
	prefix string
}

// NewPayload builds a Payload from an already decoded mapping. The mapping is
// copied, later changes to data are not visible through the Payload.
func NewPayload(data map[string]interface{}) *Payload {
	return &Payload{data: copyMap(data)}
}

// ParsePayload decodes a raw response body. XML bodies are the vendor's native
// format; JSON bodies are accepted for accounts configured to answer in JSON.
func ParsePayload(body []byte) (*Payload, glitch.DataError) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, malformedPayload(nil, "empty response body")
	}

	var (
		data map[string]interface{}
		err  error
	)
	switch trimmed[0] {
	case '{':
		data, err = decodeJSON(trimmed)
	case '<':
		data, err = decodeXML(trimmed)
	default:
		return nil, malformedPayload(nil, "response body is neither XML nor JSON")
	}
	if err != nil {
		return nil, malformedPayload(err, "could not decode response body")
	}
	return &Payload{data: data}, nil
}

// Data returns a copy of the decoded mapping.
func (p *Payload) Data() map[string]interface{} {
	return copyMap(p.data)
}

// RequiredInt reads an integer at path, failing when it is absent.
func (p *Payload) RequiredInt(path string) (int64, glitch.DataError) {
	v, ok := p.lookup(path)
	if !ok {
		return 0, missingField(p.qualify(path))
	}
	n, ok := toInt(v)
	if !ok {
		return 0, typeMismatch(p.qualify(path), "integer", v)
	}
	return n, nil
}

// OptionalInt reads an integer at path, returning nil when it is absent.
func (p *Payload) OptionalInt(path string) (*int64, glitch.DataError) {
	v, ok := p.lookup(path)
	if !ok {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, typeMismatch(p.qualify(path), "integer", v)
	}
	return &n, nil
}

// OptionalFloat reads a floating point number at path, returning nil when it is absent.
func (p *Payload) OptionalFloat(path string) (*float64, glitch.DataError) {
	v, ok := p.lookup(path)
	if !ok {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, typeMismatch(p.qualify(path), "float", v)
	}
	return &f, nil
}

// RequiredString reads a string at path, failing when it is absent.
func (p *Payload) RequiredString(path string) (string, glitch.DataError) {
	v, ok := p.lookup(path)
	if !ok {
		return "", missingField(p.qualify(path))
	}
	s, ok := toString(v)
	if !ok {
		return "", typeMismatch(p.qualify(path), "string", v)
	}
	return s, nil
}

// OptionalString reads a string at path, returning nil when it is absent.
func (p *Payload) OptionalString(path string) (*string, glitch.DataError) {
	v, ok := p.lookup(path)
	if !ok {
		return nil, nil
	}
	s, ok := toString(v)
	if !ok {
		return nil, typeMismatch(p.qualify(path), "string", v)
	}
	return &s, nil
}

// Collection returns one Payload per item of the collection at path, in index
// order. The vendor lists items as data_0, data_1, ... children; JSON lists are
// accepted as well. An absent or empty collection yields an empty slice.
func (p *Payload) Collection(path string) ([]*Payload, glitch.DataError) {
	v, ok := p.lookup(path)
	if !ok {
		return []*Payload{}, nil
	}

	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return []*Payload{}, nil
		}
	case []interface{}:
		items := make([]*Payload, 0, len(t))
		for i, raw := range t {
			itemPath := p.qualify(path + "." + strconv.Itoa(i))
			m, ok := raw.(map[string]interface{})
			if !ok {
				return nil, typeMismatch(itemPath, "group", raw)
			}
			items = append(items, &Payload{data: m, prefix: itemPath})
		}
		return items, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return itemLess(keys[i], keys[j]) })

		items := make([]*Payload, 0, len(keys))
		for _, k := range keys {
			itemPath := p.qualify(path + "." + k)
			m, ok := t[k].(map[string]interface{})
			if !ok {
				return nil, typeMismatch(itemPath, "group", t[k])
			}
			items = append(items, &Payload{data: m, prefix: itemPath})
		}
		return items, nil
	}
	return nil, typeMismatch(p.qualify(path), "collection", v)
}

func (p *Payload) lookup(path string) (interface{}, bool) {
	var cur interface{} = p.data
	for _, segment := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			cur = next
		case []interface{}:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

func (p *Payload) qualify(path string) string {
	if p.prefix == "" {
		return path
	}
	return p.prefix + "." + path
}

// itemLess orders collection keys by their numeric suffix (data_2 before data_10)
// and falls back to lexical order.
func itemLess(a, b string) bool {
	ai, aok := itemIndex(a)
	bi, bok := itemIndex(b)
	if aok && bok && ai != bi {
		return ai < bi
	}
	if aok != bok {
		return aok
	}
	return a < b
}

func itemIndex(key string) (int, bool) {
	i := strings.LastIndexByte(key, '_')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func toInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, ok := parseDecimal(s)
		if !ok {
			return 0, false
		}
		return floatToInt(f)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(t)
	case float32:
		return floatToInt(float64(t))
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// decimalPattern is plain decimal notation: no exponent, hex mantissa, underscores or Inf/NaN.
var decimalPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

func parseDecimal(s string) (float64, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func toFloat(v interface{}) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case string:
		var ok bool
		if f, ok = parseDecimal(strings.TrimSpace(t)); !ok {
			return 0, false
		}
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

func decodeJSON(body []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrMalformedPayload
	}
	if data == nil {
		return nil, ErrMalformedPayload
	}

	if len(data) == 1 {
		if inner, ok := data[envelopeRoot].(map[string]interface{}); ok {
			return inner, nil
		}
	}
	return data, nil
}

func decodeXML(body []byte) (map[string]interface{}, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	var root map[string]interface{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, ErrMalformedPayload
			}
			v, err := decodeElement(dec)
			if err != nil {
				return nil, err
			}
			switch node := v.(type) {
			case map[string]interface{}:
				root = node
			case string:
				if strings.TrimSpace(node) != "" {
					return nil, ErrMalformedPayload
				}
				root = map[string]interface{}{}
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, ErrMalformedPayload
			}
		}
	}

	if root == nil {
		return nil, ErrMalformedPayload
	}
	return root, nil
}

// decodeElement consumes tokens up to the end of the current element. Leaf
// elements decode to their text, elements with children to a mapping where
// repeated names collect into a list. Attributes are ignored.
func decodeElement(dec *xml.Decoder) (interface{}, error) {
	var (
		text     strings.Builder
		children map[string]interface{}
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec)
			if err != nil {
				return nil, err
			}
			if children == nil {
				children = map[string]interface{}{}
			}
			addChild(children, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if children != nil {
				return children, nil
			}
			return text.String(), nil
		}
	}
}

func addChild(children map[string]interface{}, name string, value interface{}) {
	existing, ok := children[name]
	if !ok {
		children[name] = value
		return
	}
	if list, ok := existing.([]interface{}); ok {
		children[name] = append(list, value)
		return
	}
	children[name] = []interface{}{existing, value}
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return copyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	}
	return v
}
