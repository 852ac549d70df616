package shipment

// Flags is the record of workflow confirmation flags carried by a shipment.
// Every flag is monotonic: it transitions false -> true at most once over the
// shipment's lifetime. Disputed is the single exception - dispute resolution
// clears it again.
//
// EscrowReleased and EscrowRefunded are mutually exclusive; once either is
// true no further value leaves the shipment's deposit.
type Flags struct {
	WarehouseConfirmed bool
	QualityApproved    bool
	ReceiverConfirmed  bool
	EscrowReleased     bool
	EscrowRefunded     bool
	Rated              bool
	Disputed           bool
}

// EscrowSettled reports whether the deposit has already left custody in
// either direction.
func (f Flags) EscrowSettled() bool {
	return f.EscrowReleased || f.EscrowRefunded
}
