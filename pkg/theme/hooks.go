package theme

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Filter names used by the comment engine. Hosts may add their own.
const (
	// FilterCommentNavigation runs over the navigation markup string before
	// it is emitted. The live-list pagination intercept attaches here.
	FilterCommentNavigation = "comment_navigation_markup"

	// FilterLoggedInNotice runs over the comment form's "logged in as"
	// fragment.
	FilterLoggedInNotice = "comment_form_logged_in"
)

// interceptPriority places scoped intercepts after ordinary host filters.
const interceptPriority = 1000

// FilterFunc rewrites a markup string. Returning the input unchanged is the
// identity filter.
type FilterFunc func(value string, args *FilterArgs) string

// FilterArgs carries contextual values alongside the filtered string.
type FilterArgs struct {
	Data map[string]any
}

// String returns the named argument coerced to a string.
func (a *FilterArgs) String(key string) string {
	if a == nil {
		return ""
	}
	if v, ok := a.Data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Int returns the named argument coerced to an int.
func (a *FilterArgs) Int(key string) int {
	if a == nil {
		return 0
	}
	if v, ok := a.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

// Bool returns the named argument coerced to a bool.
func (a *FilterArgs) Bool(key string) bool {
	if a == nil {
		return false
	}
	if v, ok := a.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

// Raw returns the named argument without coercion.
func (a *FilterArgs) Raw(key string) any {
	if a == nil {
		return nil
	}
	return a.Data[key]
}

type filterEntry struct {
	id       int
	priority int
	fn       FilterFunc
}

// Hooks is a registry of named filter chains.
//
// Chains run in ascending priority order; entries with equal priority run in
// registration order. The registry belongs to one engine instance, never to
// the process.
type Hooks struct {
	mu      sync.RWMutex
	nextID  int
	filters map[string][]filterEntry
}

// NewHooks creates an empty filter registry.
func NewHooks() *Hooks {
	return &Hooks{
		filters: make(map[string][]filterEntry),
	}
}

// AddFilter registers fn on the named chain and returns an id usable with
// RemoveFilter.
func (h *Hooks) AddFilter(name string, fn FilterFunc, priority int) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.filters[name] = append(h.filters[name], filterEntry{
		id:       h.nextID,
		priority: priority,
		fn:       fn,
	})
	return h.nextID
}

// RemoveFilter removes the filter with the given id from the named chain.
// Removing an unknown id is a no-op.
func (h *Hooks) RemoveFilter(name string, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.filters[name]
	for i, e := range entries {
		if e.id == id {
			h.filters[name] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Apply runs value through the named chain and returns the result. An empty
// chain is the identity.
func (h *Hooks) Apply(name, value string, args *FilterArgs) string {
	h.mu.RLock()
	entries := make([]filterEntry, len(h.filters[name]))
	copy(entries, h.filters[name])
	h.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})

	for _, e := range entries {
		value = e.fn(value, args)
	}
	return value
}

// Count returns the number of filters on the named chain.
func (h *Hooks) Count(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.filters[name])
}

// Intercept installs a scoped transform at the tail of the named chain and
// returns its release func. The release is idempotent and safe to both defer
// and call eagerly, so an intercept can be removed right after the one
// emission it targets while a deferred release still covers error exits.
func (h *Hooks) Intercept(name string, fn func(string) string) (release func()) {
	id := h.AddFilter(name, func(value string, _ *FilterArgs) string {
		return fn(value)
	}, interceptPriority)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.RemoveFilter(name, id)
		})
	}
}
