// Package icons is the fixed catalog of glyph keys the UI can render.
// Unknown keys resolve to a default rather than erroring, so documents
// written by newer clients stay displayable on older ones.
package icons

import "sort"

const DefaultKey = "star"

var known = map[string]struct{}{
	"sun": {}, "moon": {}, "shower-head": {}, "star": {},
	"alert-triangle": {}, "skull": {}, "shopping-bag": {}, "gamepad": {},
	"utensils": {}, "history": {}, "rotate-ccw": {}, "shield-alert": {},
	"check-circle": {}, "trophy": {}, "sparkles": {}, "frown": {},
	"trash": {}, "wifi-off": {}, "users": {}, "heart": {},
	"zap": {}, "book-open": {}, "music": {}, "tv": {},
	"smartphone": {}, "car": {}, "bed": {}, "clock": {},
	"home": {}, "smile": {}, "ghost": {}, "crown": {}, "rocket": {},
}

// Resolve returns key if it names a known glyph, DefaultKey otherwise.
func Resolve(key string) string {
	if _, ok := known[key]; ok {
		return key
	}
	return DefaultKey
}

func Known(key string) bool {
	_, ok := known[key]
	return ok
}

// Keys returns all known glyph keys in stable order, for icon pickers.
func Keys() []string {
	keys := make([]string, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
