package content

import (
	"testing"
	"time"
)

func comment(id, parent int64) *Comment {
	return &Comment{
		ID:        id,
		ParentID:  parent,
		Author:    Author{Name: "Author"},
		Content:   "text",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestThread(t *testing.T) {
	flat := []*Comment{
		comment(1, 0),
		comment(2, 1),
		comment(3, 1),
		comment(4, 0),
		comment(5, 3),
	}

	roots := Thread(flat)

	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 4 {
		t.Errorf("root order should follow input, got %d then %d", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("comment 1 should have 2 children, got %d", len(roots[0].Children))
	}
	if len(roots[0].Children[1].Children) != 1 {
		t.Errorf("comment 3 should have 1 child")
	}
}

func TestThreadOrphanBecomesRoot(t *testing.T) {
	flat := []*Comment{
		comment(1, 0),
		comment(2, 99),
	}

	roots := Thread(flat)
	if len(roots) != 2 {
		t.Errorf("orphaned comment should become top-level, got %d roots", len(roots))
	}
}

func TestTotal(t *testing.T) {
	roots := Thread([]*Comment{
		comment(1, 0),
		comment(2, 1),
		comment(3, 2),
		comment(4, 0),
	})

	if got := Total(roots); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
}

func TestIsPing(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{TypeComment, false},
		{"", false},
		{TypePingback, true},
		{TypeTrackback, true},
	}

	for _, tt := range tests {
		c := &Comment{Type: tt.typ}
		if got := c.IsPing(); got != tt.want {
			t.Errorf("IsPing(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
