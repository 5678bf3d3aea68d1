package decoration

import "testing"

func TestParseWorkStatusFilter(t *testing.T) {
	tests := []struct {
		in   string
		want WorkStatusCondition
	}{
		{"", WorkStatusCondition{}},
		{"setup_completed", WorkStatusCondition{Exact: "setup_completed"}},
		// Inclusive in-progress filter, not a literal match.
		{"materials_prepared", WorkStatusCondition{ExcludeSetupCompleted: true}},
		{"assigned-decorator", WorkStatusCondition{Exact: "assigned-decorator"}},
		{"anything_else", WorkStatusCondition{Exact: "anything_else"}},
	}
	for _, tc := range tests {
		got := ParseWorkStatusFilter(tc.in)
		if got != tc.want {
			t.Fatalf("ParseWorkStatusFilter(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}
