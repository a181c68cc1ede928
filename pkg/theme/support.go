package theme

import "sync"

// Feature names the engine understands.
const (
	// FeatureLiveCommentList enables the live-polling comment list mode.
	FeatureLiveCommentList = "live-comment-list"
)

// Support tracks which optional features the active theme declares.
type Support struct {
	mu       sync.RWMutex
	features map[string]bool
}

// NewSupport creates an empty feature registry.
func NewSupport(features ...string) *Support {
	s := &Support{features: make(map[string]bool)}
	for _, f := range features {
		s.features[f] = true
	}
	return s
}

// Add declares support for a feature.
func (s *Support) Add(feature string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features[feature] = true
}

// Remove withdraws support for a feature.
func (s *Support) Remove(feature string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.features, feature)
}

// Supports reports whether the feature was declared.
func (s *Support) Supports(feature string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features[feature]
}

// Translator maps a source label to its localized form. The zero behavior is
// identity; hosts plug in their own catalog lookup.
type Translator func(label string) string

// NopTranslator returns labels unchanged.
func NopTranslator(label string) string { return label }
