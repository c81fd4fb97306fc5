// Package strutil holds string and path helpers for metric-style names.
package strutil

import (
	"sort"

	"github.com/maruel/natural"
	stringutils "github.com/msaf1980/go-stringutils"
)

// LessNatural compares two strings in natural order, so "metric2" sorts
// before "metric10".
func LessNatural(a, b string) bool {
	return natural.Less(a, b)
}

// SortNatural sorts ss in place in natural order.
func SortNatural(ss []string) {
	sort.Slice(ss, func(i, j int) bool { return natural.Less(ss[i], ss[j]) })
}

// JoinMetricPath joins non-empty parts with dots into a metric path.
func JoinMetricPath(parts ...string) string {
	size := 0
	for _, p := range parts {
		size += len(p) + 1
	}

	var sb stringutils.Builder
	sb.Grow(size)
	for _, p := range parts {
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			_ = sb.WriteByte('.')
		}
		_, _ = sb.WriteString(p)
	}
	return sb.String()
}

// SanitizeMetricName replaces every character outside [A-Za-z0-9_-]
// with an underscore.
func SanitizeMetricName(s string) string {
	var sb stringutils.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			_ = sb.WriteByte(c)
		default:
			_ = sb.WriteByte('_')
		}
	}
	return sb.String()
}
