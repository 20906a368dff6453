package ui

import (
	"testing"

	"trp/internal/domain"
)

func failures(titles ...string) []domain.TestOutcome {
	out := make([]domain.TestOutcome, 0, len(titles))
	for _, title := range titles {
		out = append(out, domain.TestOutcome{Title: title, Status: domain.StatusFailed})
	}
	return out
}

func titles(outcomes []domain.TestOutcome) []string {
	var ts []string
	for _, o := range outcomes {
		ts = append(ts, o.Title)
	}
	return ts
}

func TestFilterFailures(t *testing.T) {
	all := failures("checkout times out", "login works", "checkout totals wrong")

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{"empty pattern keeps all", "", []string{"checkout times out", "login works", "checkout totals wrong"}},
		{"substring match", "checkout", []string{"checkout times out", "checkout totals wrong"}},
		{"wildcard both sides", "*login*", []string{"login works"}},
		{"wildcard multiple parts", "*checkout*wrong*", []string{"checkout totals wrong"}},
		{"no match", "payment", nil},
		{"exact wildcard match", "login *", []string{"login works"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(FilterFailures(all, tt.pattern))
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
					break
				}
			}
		})
	}
}
