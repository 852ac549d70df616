package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with defined forward transitions so shipments
// follow the multi-party confirmation workflow.
//
// State transitions:
//
//	Pending ──> WarehouseConfirmed ──> QualityApproved ──> InTransit ──> Delivered
//	   │                │                    │                 │
//	   └────────────────┴────────────────────┴─────────────────┴──> Canceled
//	                        (admin cancellation from any non-terminal state)
//
// Delivered and Canceled are terminal. The only operation allowed to leave a
// terminal state is dispute resolution, which forces the terminal outcome
// directly and bypasses this edge table.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status, entered atomically with creation.
	// The shipment is waiting for warehouse confirmation.
	Pending

	// WarehouseConfirmed indicates the warehouse manager confirmed intake.
	WarehouseConfirmed

	// QualityApproved indicates the quality inspector approved the goods.
	QualityApproved

	// InTransit indicates the carrier has picked up the shipment.
	InTransit

	// Delivered indicates the receiver confirmed delivery. Terminal.
	Delivered

	// Canceled indicates the shipment was canceled. Terminal.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Pending:            "Pending",
		WarehouseConfirmed: "WarehouseConfirmed",
		QualityApproved:    "QualityApproved",
		InTransit:          "InTransit",
		Delivered:          "Delivered",
		Canceled:           "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:            "Pending",
		WarehouseConfirmed: "WarehouseConfirmed",
		QualityApproved:    "QualityApproved",
		InTransit:          "InTransit",
		Delivered:          "Delivered",
		Canceled:           "Canceled",
	}
}

// Validate checks if the Status value is a member of the valid status set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further forward transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// ConfirmWarehouse transitions the status to WarehouseConfirmed.
//
// Valid transitions:
//   - Pending -> WarehouseConfirmed
//
// Returns (0, error) when the shipment is not awaiting warehouse confirmation.
func (s Status) ConfirmWarehouse() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateErrorWithCause(
			"warehouseConfirm",
			fmt.Errorf("%s is not a valid status to confirm warehouse intake", s.String()),
		)
	}

	return WarehouseConfirmed, nil
}

// ApproveQuality transitions the status to QualityApproved.
//
// Valid transitions:
//   - WarehouseConfirmed -> QualityApproved
//
// Returns (0, error) when warehouse confirmation has not happened yet or the
// shipment has already moved past quality approval.
func (s Status) ApproveQuality() (Status, error) {
	if s != WarehouseConfirmed {
		return 0, errs.NewInvalidStateErrorWithCause(
			"qualityApprove",
			fmt.Errorf("%s is not a valid status to approve quality", s.String()),
		)
	}

	return QualityApproved, nil
}

// StartTransit transitions the status to InTransit.
//
// Valid transitions:
//   - QualityApproved -> InTransit
//
// Returns (0, error) when the shipment has not passed both confirmation gates.
func (s Status) StartTransit() (Status, error) {
	if s != QualityApproved {
		return 0, errs.NewInvalidStateErrorWithCause(
			"startTransit",
			fmt.Errorf("%s is not a valid status to start transit", s.String()),
		)
	}

	return InTransit, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
//
// Returns (0, error) when the shipment is not in transit.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateErrorWithCause(
			"confirmDelivery",
			fmt.Errorf("%s is not a valid status to confirm delivery", s.String()),
		)
	}

	return Delivered, nil
}

// Cancel transitions the status to Canceled.
//
// Valid transitions: any non-terminal status -> Canceled.
// Returns (0, error) when the shipment is already Delivered or Canceled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateErrorWithCause(
			"cancelShipment",
			fmt.Errorf("%s is a terminal status", s.String()),
		)
	}

	return Canceled, nil
}
