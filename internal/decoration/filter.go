package decoration

// WorkStatusCondition translates the decorator dashboard's workStatus query
// value into a decoration-status condition.
//
// The semantics are deliberately asymmetric and kept for frontend
// compatibility: "materials_prepared" is an inclusive "still in progress"
// filter matching every status EXCEPT setup_completed, not a literal match.
// Despite its name it also returns freshly paid bookings the decorator has
// not started on. Any other non-empty value matches literally.
type WorkStatusCondition struct {
	// Exact, when set, requires decoration_status = Exact.
	Exact string
	// ExcludeSetupCompleted requires decoration_status <> 'setup_completed'.
	ExcludeSetupCompleted bool
}

func (c WorkStatusCondition) IsZero() bool {
	return c.Exact == "" && !c.ExcludeSetupCompleted
}

func ParseWorkStatusFilter(workStatus string) WorkStatusCondition {
	switch workStatus {
	case "":
		return WorkStatusCondition{}
	case string(StatusSetupCompleted):
		return WorkStatusCondition{Exact: string(StatusSetupCompleted)}
	case string(StatusMaterialsPrepared):
		return WorkStatusCondition{ExcludeSetupCompleted: true}
	default:
		return WorkStatusCondition{Exact: workStatus}
	}
}
