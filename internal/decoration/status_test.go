package decoration

import "testing"

func TestParseStatus_RejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "in_delivery", "Pending", "done"} {
		if _, err := ParseStatus(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestCanTransition_HappyPath(t *testing.T) {
	steps := []struct{ from, to Status }{
		{StatusPending, StatusAssignedDecorator},
		{StatusAssignedDecorator, StatusMaterialsPrepared},
		{StatusMaterialsPrepared, StatusSetupCompleted},
	}
	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s allowed", s.from, s.to)
		}
	}
}

func TestCanTransition_RejectsSkipsAndReversals(t *testing.T) {
	bad := []struct{ from, to Status }{
		{StatusPending, StatusMaterialsPrepared},
		{StatusPending, StatusSetupCompleted},
		{StatusAssignedDecorator, StatusSetupCompleted},
		{StatusMaterialsPrepared, StatusPending},
		{StatusSetupCompleted, StatusMaterialsPrepared},
	}
	for _, s := range bad {
		if CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s rejected", s.from, s.to)
		}
	}
}

func TestCanTransitionDirectly_OnlyCompletionStep(t *testing.T) {
	if !CanTransitionDirectly(StatusMaterialsPrepared, StatusSetupCompleted) {
		t.Fatalf("expected %s -> %s directly settable", StatusMaterialsPrepared, StatusSetupCompleted)
	}

	// The payment and assignment edges are valid lifecycle steps but must not
	// be settable through the status endpoint.
	reserved := []struct{ from, to Status }{
		{StatusPending, StatusAssignedDecorator},
		{StatusAssignedDecorator, StatusMaterialsPrepared},
	}
	for _, s := range reserved {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("expected %s -> %s to remain a valid lifecycle step", s.from, s.to)
		}
		if CanTransitionDirectly(s.from, s.to) {
			t.Fatalf("expected %s -> %s rejected for direct set", s.from, s.to)
		}
	}
}
