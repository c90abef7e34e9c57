package shared

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Content types
const (
	MIMEJSON = "application/json"
	MIMEHTML = "text/html"
)

// acceptRange is one media range of an Accept header.
type acceptRange struct {
	typ     string
	subtype string
	q       float64
}

// specificity ranks how precisely the range names a media type.
func (a acceptRange) specificity() int {
	switch {
	case a.typ == "*":
		return 0
	case a.subtype == "*":
		return 1
	default:
		return 2
	}
}

func (a acceptRange) matches(typ, subtype string) bool {
	return (a.typ == "*" || a.typ == typ) && (a.subtype == "*" || a.subtype == subtype)
}

// parseAccept parses an Accept header. Malformed ranges are skipped.
func parseAccept(header string) []acceptRange {
	var ranges []acceptRange
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(part)
		if err != nil {
			continue
		}
		typ, subtype, ok := strings.Cut(mediaType, "/")
		if !ok || typ == "" || subtype == "" || (typ == "*" && subtype != "*") {
			continue
		}

		q := 1.0
		if raw, ok := params["q"]; ok {
			q, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			q = min(max(q, 0), 1)
		}
		ranges = append(ranges, acceptRange{typ: typ, subtype: subtype, q: q})
	}
	return ranges
}

// quality returns the weight the client gives mediaType: the q of the most
// specific matching range, the first one on ties, or 0 if nothing matches.
func quality(ranges []acceptRange, mediaType string) float64 {
	typ, subtype, _ := strings.Cut(mediaType, "/")
	best, bestSpecificity := 0.0, -1
	for _, r := range ranges {
		if !r.matches(typ, subtype) {
			continue
		}
		if s := r.specificity(); s > bestSpecificity {
			best, bestSpecificity = r.q, s
		}
	}
	return best
}

// PreferJSON reports whether an Accept header weighs JSON strictly above
// HTML. A wildcard matching both equally selects HTML.
func PreferJSON(accept string) bool {
	ranges := parseAccept(accept)
	return quality(ranges, MIMEJSON) > quality(ranges, MIMEHTML)
}

// Negotiate selects the representation for r from its Accept header.
func Negotiate(r *http.Request) Representation {
	if PreferJSON(r.Header.Get("Accept")) {
		return RepresentationJSON
	}
	return RepresentationHTML
}
