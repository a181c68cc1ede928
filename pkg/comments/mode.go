package comments

// PollIntervalMs is the poll cadence advertised on live-list containers,
// fixed at one minute.
const PollIntervalMs = 60000

// DefaultUnpagedCap is the item cap advertised when comment pagination is
// off. The live-list container requires a concrete numeric cap even when the
// list is effectively unbounded, so this stands in for "no limit". Override
// via ListConfig.UnpagedCap.
const DefaultUnpagedCap = 10000

// Order is the comment sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Settings are the site-wide discussion settings one render reads. The zero
// value means pagination disabled, unthreaded, unspecified order.
type Settings struct {
	// Order is the top-level comment sort direction.
	Order Order

	// Paged enables comment pagination; PerPage is the page size and is
	// meaningful only when Paged is set.
	Paged   bool
	PerPage int

	// Threaded enables nested replies up to MaxDepth levels.
	Threaded bool
	MaxDepth int
}

// DefaultSettings returns the discussion defaults: ascending order,
// pagination off, threading five levels deep.
func DefaultSettings() Settings {
	return Settings{
		Order:    Asc,
		Threaded: true,
		MaxDepth: 5,
	}
}

// Mode is the resolved rendering mode for one pass. It is computed once per
// render and threaded through emission; nothing re-checks the capability
// flag afterwards.
type Mode struct {
	// Live selects the live-polling list layout.
	Live bool

	// PollIntervalMs and PageCap are the client polling contract. Both are
	// zero unless Live is set.
	PollIntervalMs int
	PageCap        int
}

// String returns "live" or "static".
func (m Mode) String() string {
	if m.Live {
		return "live"
	}
	return "static"
}

// ResolveMode decides between the static and live list layouts.
//
// With the capability flag off the result is static. With it on, the poll
// interval is fixed and the page cap is the configured page size, or
// unpagedCap when pagination is disabled (zero or negative unpagedCap falls
// back to DefaultUnpagedCap). There are no error paths.
func ResolveMode(liveEnabled bool, s Settings, unpagedCap int) Mode {
	if !liveEnabled {
		return Mode{}
	}

	pageCap := unpagedCap
	if pageCap <= 0 {
		pageCap = DefaultUnpagedCap
	}
	if s.Paged && s.PerPage > 0 {
		pageCap = s.PerPage
	}

	return Mode{
		Live:           true,
		PollIntervalMs: PollIntervalMs,
		PageCap:        pageCap,
	}
}
