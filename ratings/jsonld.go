package ratings

import (
	"strconv"
	"strings"

	"github.com/ChaitanyaVootla/movie-browser-api/dom"
	"github.com/tidwall/gjson"
)

// workTypes are schema.org types that carry a title's aggregate rating.
var workTypes = map[string]bool{
	"Movie":              true,
	"TVSeries":           true,
	"TVSeason":           true,
	"TVEpisode":          true,
	"CreativeWork":       true,
	"CreativeWorkSeries": true,
	"VideoGame":          true,
}

// structuredObjects returns every top-level object from the page's JSON-LD
// blocks, flattening arrays and @graph. Invalid blocks are skipped.
func structuredObjects(doc dom.Node) ([]gjson.Result, error) {
	scripts, err := doc.FindAll(`script[type="application/ld+json"]`)
	if err != nil {
		return nil, err
	}
	var objects []gjson.Result
	for _, s := range scripts {
		raw, err := s.Text()
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" || !gjson.Valid(raw) {
			continue
		}
		objects = appendObjects(objects, gjson.Parse(raw))
	}
	return objects, nil
}

func appendObjects(dst []gjson.Result, v gjson.Result) []gjson.Result {
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			dst = appendObjects(dst, item)
		}
	case v.IsObject():
		if graph := v.Get("@graph"); graph.IsArray() {
			return appendObjects(dst, graph)
		}
		dst = append(dst, v)
	}
	return dst
}

// isWork reports whether the object's @type (string or list) is a work type.
func isWork(obj gjson.Result) bool {
	t := obj.Get("@type")
	if t.IsArray() {
		for _, item := range t.Array() {
			if workTypes[item.String()] {
				return true
			}
		}
		return false
	}
	return workTypes[t.String()]
}

// firstExisting returns the first path that resolves to a value.
func firstExisting(obj gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := obj.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// jsonFloat reads a number or numeric string.
func jsonFloat(v gjson.Result) *float64 {
	switch v.Type {
	case gjson.Number:
		f := v.Float()
		return finite(f)
	case gjson.String:
		return ParseDecimal(v.String())
	}
	return nil
}

// jsonCount reads an integer count from a number or display string.
func jsonCount(v gjson.Result) *int64 {
	switch v.Type {
	case gjson.Number:
		n := v.Int()
		if n < 0 {
			return nil
		}
		return &n
	case gjson.String:
		return ParseRatingCount(v.String())
	}
	return nil
}

// jsonPercent reads a 0-100 score from a number or a "91%" string.
func jsonPercent(v gjson.Result) *int {
	switch v.Type {
	case gjson.Number:
		n := int(v.Int())
		return &n
	case gjson.String:
		return ParsePercent(v.String())
	}
	return nil
}

func jsonString(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return nil
	}
	return &s
}

func parseBool(s string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &b
}
