package notification

import (
	"testing"

	common_models "go-spear/internal/common/models"
)

func boolPtr(b bool) *bool { return &b }

func TestListFilters(t *testing.T) {
	s := NewStore()
	s.Load(common_models.RoleClient)

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{
			name:    "no filter keeps insertion order",
			filter:  Filter{},
			wantIDs: []string{"c1", "c2", "c3", "c4", "c5", "c6"},
		},
		{
			name:    "search matches title",
			filter:  Filter{Search: "workstation"},
			wantIDs: []string{"c1"},
		},
		{
			name:    "search matches message",
			filter:  Filter{Search: "july invoice"},
			wantIDs: []string{"c2"},
		},
		{
			name:    "topic filter",
			filter:  Filter{Topic: "device"},
			wantIDs: []string{"c1", "c4"},
		},
		{
			name:    "priority filter",
			filter:  Filter{Priority: PriorityMedium},
			wantIDs: []string{"c3", "c5"},
		},
		{
			name:    "unread only",
			filter:  Filter{Unread: boolPtr(true)},
			wantIDs: []string{"c1", "c3", "c5"},
		},
		{
			name:    "read only",
			filter:  Filter{Unread: boolPtr(false)},
			wantIDs: []string{"c2", "c4", "c6"},
		},
		{
			name:    "combined search and topic",
			filter:  Filter{Search: "session", Topic: "device"},
			wantIDs: []string{"c4"},
		},
		{
			name:    "no match yields empty set",
			filter:  Filter{Search: "does-not-exist"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.List(tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("List() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i, n := range got {
				if n.ID != tt.wantIDs[i] {
					t.Errorf("entry %d = %s, want %s", i, n.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestListStampsTimeLabel(t *testing.T) {
	s := NewStore()
	s.Load(common_models.RoleClient)

	for _, n := range s.List(Filter{}) {
		if n.Time == "" {
			t.Errorf("entry %s has no recency label", n.ID)
		}
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := NewStore()
	s.Load(common_models.RoleClient)

	got := s.List(Filter{})
	got[0].Title = "mutated"
	if len(got[0].Actions) > 0 {
		got[0].Actions[0].Label = "mutated"
	}

	fresh, _ := s.Get(got[0].ID)
	if fresh.Title == "mutated" {
		t.Error("List() exposed internal state")
	}
	if len(fresh.Actions) > 0 && fresh.Actions[0].Label == "mutated" {
		t.Error("List() exposed internal action slice")
	}
}
