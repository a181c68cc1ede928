package comments

import (
	"fmt"
	"strconv"
)

// Option keys understood by the built-in collaborators. Hosts may pass any
// additional keys; they travel through to the formatter untouched.
const (
	// OptStyle is the list wrapper style. Forced to "ol"; caller values are
	// ignored.
	OptStyle = "style"

	// OptShortPing selects the short notation for pingbacks and trackbacks.
	// Forced to true; caller values are ignored.
	OptShortPing = "short_ping"

	// OptOrder is the top-level sort direction, "asc" or "desc".
	OptOrder = "order"

	// OptPage and OptPerPage select the comment page window.
	OptPage    = "page"
	OptPerPage = "per_page"

	// OptMaxDepth caps reply nesting; 1 renders a flat list.
	OptMaxDepth = "max_depth"

	// OptAvatarSize is the per-item avatar size in pixels.
	OptAvatarSize = "avatar_size"
)

// Forced option values. The list markup contract depends on these, so
// callers cannot override them.
const (
	forcedStyle = "ol"
)

// DefaultAvatarSize is the per-item avatar size used when the caller does
// not choose one.
const DefaultAvatarSize = 32

// Options is the caller-supplied render option mapping. One merged copy is
// made per render; the caller's map is never modified.
type Options map[string]any

// String returns the named option coerced to a string.
func (o Options) String(key string) string {
	if v, ok := o[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Int returns the named option coerced to an int.
func (o Options) Int(key string) int {
	if v, ok := o[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int64:
			return int(val)
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

// Bool returns the named option coerced to a bool.
func (o Options) Bool(key string) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

// Has reports whether the option is present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// withDefaults returns a fresh mapping: settings-derived defaults, overlaid
// with the caller's values, with the forced keys applied last so they cannot
// be overridden.
func (o Options) withDefaults(s Settings) Options {
	merged := Options{
		OptAvatarSize: DefaultAvatarSize,
	}

	if s.Order != "" {
		merged[OptOrder] = string(s.Order)
	}
	if s.Paged && s.PerPage > 0 {
		merged[OptPerPage] = s.PerPage
		merged[OptPage] = 1
	}
	if s.Threaded && s.MaxDepth > 1 {
		merged[OptMaxDepth] = s.MaxDepth
	} else {
		merged[OptMaxDepth] = 1
	}

	for k, v := range o {
		merged[k] = v
	}

	merged[OptStyle] = forcedStyle
	merged[OptShortPing] = true

	return merged
}
