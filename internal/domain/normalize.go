package domain

import (
	"regexp"
	"strings"
)

// directionalRe matches compass letters and spaces that operators mix into
// coordinate fields, e.g. "42.50 N" or "71.20 W".
var directionalRe = regexp.MustCompile(`[NSEWnsew ]`)

// CleanReport normalizes a report in place, catching the usual foibles of
// hand-entered data. Rules run in a fixed order:
//
//  1. Extra words typed after the call sign move to the comment field.
//  2. The call sign is trimmed and uppercased.
//  3. A trailing foot mark on the height becomes " ft", a trailing inch
//     mark becomes " in".
//  4. Coordinate fields lose directional letters and embedded spaces.
//
// The historical rule of stripping quote characters from every field is not
// applied: the store writes with bound parameters, so quotes are harmless.
// CleanReport is idempotent: cleaning an already-clean report changes nothing.
func CleanReport(r *RawReport) {
	if words := strings.Fields(r.Call); len(words) > 1 {
		r.Call = words[0]
		r.Comment = r.Comment + " " + strings.Join(words[1:], " ")
	}
	r.Call = strings.ToUpper(strings.TrimSpace(r.Call))

	if rest, ok := strings.CutSuffix(r.Height, "'"); ok {
		r.Height = rest + " ft"
	}
	if rest, ok := strings.CutSuffix(r.Height, `"`); ok {
		r.Height = rest + " in"
	}

	r.Latitude = directionalRe.ReplaceAllString(r.Latitude, "")
	r.Longitude = directionalRe.ReplaceAllString(r.Longitude, "")
}
