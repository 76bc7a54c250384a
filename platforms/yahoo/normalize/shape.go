// Package normalize flattens the Yahoo Fantasy API's inconsistent JSON
// serializations into the canonical model types. Depending on sport,
// season and endpoint the vendor serializes the same logical entity in
// structurally different ways: a collection arrives either as a plain
// array or as an object keyed by stringified indices with a sibling
// "count" field, and a single entity arrives either as a flat object or
// as an array of partial objects whose fields have to be merged back
// together. There is no reliable schema-version field, so every extractor
// classifies the node by structural probing and then runs the extraction
// for that shape. An unknown serialization fails with
// UnrecognizedShapeError carrying the node's shallow structure; nothing is
// ever guessed or silently dropped.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
)

// Shape is the structural classification of a decoded JSON node.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeScalar
	// ShapeObject is a plain JSON object holding entity fields.
	ShapeObject
	// ShapeIndexedMap is the vendor's object-encoded collection: keys are
	// stringified indices ("0", "1", ...) with an optional "count" sibling.
	ShapeIndexedMap
	// ShapeList is an ordered collection of child entities.
	ShapeList
	// ShapeFragmentList is a list whose elements are partial objects with
	// disjoint keys, together describing one entity.
	ShapeFragmentList
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeScalar:
		return "scalar"
	case ShapeObject:
		return "object"
	case ShapeIndexedMap:
		return "indexed-map"
	case ShapeList:
		return "list"
	case ShapeFragmentList:
		return "fragment-list"
	default:
		return "unknown"
	}
}

// UnrecognizedShapeError reports a node whose structure matched no known
// vendor serialization. Keys/Len describe the shallow structure of the
// offending node for diagnostics.
type UnrecognizedShapeError struct {
	Entity string
	Shape  Shape
	Keys   []string
	Len    int
}

func (e *UnrecognizedShapeError) Error() string {
	if len(e.Keys) > 0 {
		return fmt.Sprintf("unrecognized %s shape (%s): keys=%v", e.Entity, e.Shape, e.Keys)
	}
	return fmt.Sprintf("unrecognized %s shape (%s): len=%d", e.Entity, e.Shape, e.Len)
}

func shapeError(entity string, node any) error {
	e := &UnrecognizedShapeError{Entity: entity, Shape: Classify(node)}
	switch n := node.(type) {
	case map[string]any:
		e.Keys = make([]string, 0, len(n))
		for k := range n {
			e.Keys = append(e.Keys, k)
		}
		sort.Strings(e.Keys)
	case []any:
		e.Len = len(n)
	}
	return e
}

// Classify determines the structural shape of a decoded JSON node.
func Classify(node any) Shape {
	switch n := node.(type) {
	case nil:
		return ShapeEmpty
	case map[string]any:
		if len(n) == 0 {
			return ShapeEmpty
		}
		if isIndexedMap(n) {
			return ShapeIndexedMap
		}
		return ShapeObject
	case []any:
		if len(n) == 0 {
			return ShapeEmpty
		}
		if isFragmentList(n) {
			return ShapeFragmentList
		}
		return ShapeList
	default:
		return ShapeScalar
	}
}

// isIndexedMap reports whether every key is a stringified index or the
// "count" sibling. An empty collection arrives as a bare {"count": 0}
// with no index keys at all, so a lone count still qualifies.
func isIndexedMap(m map[string]any) bool {
	indices := 0
	hasCount := false
	for k := range m {
		if k == "count" {
			hasCount = true
			continue
		}
		if _, err := strconv.Atoi(k); err != nil {
			return false
		}
		indices++
	}
	return indices > 0 || hasCount
}

// isFragmentList reports whether a list looks like one entity spread over
// partial objects: every element is an object (or a nested list of them)
// and no field name repeats across fragments. A list of same-keyed objects
// is a collection, not a fragment set.
func isFragmentList(l []any) bool {
	seen := make(map[string]bool)

	var visit func(node any) bool
	visit = func(node any) bool {
		switch n := node.(type) {
		case map[string]any:
			for k := range n {
				if seen[k] {
					return false
				}
				seen[k] = true
			}
			return true
		case []any:
			for _, el := range n {
				if !visit(el) {
					return false
				}
			}
			return true
		default:
			return false
		}
	}

	for _, el := range l {
		if !visit(el) {
			return false
		}
	}
	return true
}

// Collection returns the ordered child nodes of a vendor collection,
// whichever way it was serialized. IndexedMap children come back in
// numeric key order; the "count" sibling is dropped.
func Collection(entity string, node any) ([]any, error) {
	switch Classify(node) {
	case ShapeEmpty:
		return nil, nil
	case ShapeIndexedMap:
		m := node.(map[string]any)
		keys := make([]int, 0, len(m))
		for k := range m {
			if k == "count" {
				continue
			}
			i, err := strconv.Atoi(k)
			if err != nil {
				return nil, shapeError(entity, node)
			}
			keys = append(keys, i)
		}
		sort.Ints(keys)
		out := make([]any, 0, len(keys))
		for _, i := range keys {
			out = append(out, m[strconv.Itoa(i)])
		}
		return out, nil
	case ShapeList, ShapeFragmentList:
		// A short fragment-looking list can legitimately be a collection of
		// two entities with disjoint fields; the caller decides per element.
		return node.([]any), nil
	default:
		return nil, shapeError(entity, node)
	}
}

// Flatten merges a single entity into one field map, whichever way it was
// serialized: a flat object passes through, a fragment list (including
// nested lists of fragments) is merged. Later fragments win on the rare
// key collision. An index-keyed node is a collection, not an entity, and
// is rejected.
func Flatten(entity string, node any) (map[string]any, error) {
	switch Classify(node) {
	case ShapeObject:
		return node.(map[string]any), nil
	case ShapeList, ShapeFragmentList:
		out := make(map[string]any)

		var merge func(n any)
		merge = func(n any) {
			switch v := n.(type) {
			case map[string]any:
				for k, val := range v {
					out[k] = val
				}
			case []any:
				for _, el := range v {
					merge(el)
				}
			}
		}
		merge(node)

		if len(out) == 0 {
			return nil, shapeError(entity, node)
		}
		return out, nil
	default:
		return nil, shapeError(entity, node)
	}
}

// dig walks nested objects by key, returning nil as soon as a key is
// missing or the node is not an object.
func dig(node any, keys ...string) any {
	cur := node
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// str renders a scalar JSON value as a string. JSON numbers decode as
// float64; integral values are rendered without an exponent or trailing
// zeros.
func str(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		if n {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", n)
	}
}

// intval parses ints that the vendor serializes as either numbers or
// numeric strings. Returns 0 when absent or unparseable.
func intval(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// flag interprets the vendor's boolean encodings: "1"/1/true are true.
func flag(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n == 1
	case string:
		return n == "1"
	default:
		return false
	}
}
