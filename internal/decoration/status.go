package decoration

import "fmt"

// Status strings are part of the wire contract with the frontend; do not
// rename them.
type Status string

const (
	StatusPending           Status = "pending"
	StatusAssignedDecorator Status = "assigned-decorator"
	StatusMaterialsPrepared Status = "materials_prepared"
	StatusSetupCompleted    Status = "setup_completed"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAssignedDecorator, StatusMaterialsPrepared, StatusSetupCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:           {StatusAssignedDecorator: true}, // payment reconciliation only
	StatusAssignedDecorator: {StatusMaterialsPrepared: true}, // decorator assignment
	StatusMaterialsPrepared: {StatusSetupCompleted: true},
	StatusSetupCompleted:    {}, // terminal; only the admin direct-set can move it
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// directTargets lists the statuses a caller may set through the status
// endpoint. The other edges carry mandatory side effects and are reachable
// only through their own operations: assigned-decorator through payment
// reconciliation, materials_prepared through decorator assignment.
var directTargets = map[Status]bool{
	StatusSetupCompleted: true,
}

func CanTransitionDirectly(from, to Status) bool {
	return directTargets[to] && CanTransition(from, to)
}
