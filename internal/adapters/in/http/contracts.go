package http

import (
	"time"
)

// Error is the common error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateShipmentRequest registers a new shipment. The deposit is attached as
// a body amount; the creator is the calling identity.
type CreateShipmentRequest struct {
	TrackingCode  string `json:"trackingCode"`
	ProductName   string `json:"productName"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Carrier       string `json:"carrier"`
	ShippingFee   int64  `json:"shippingFee"`
	DepositAmount int64  `json:"depositAmount"`
}

// AssignActorsRequest assigns the warehouse manager and/or quality inspector.
// Either field may be omitted; at least one must be present.
type AssignActorsRequest struct {
	Manager   *string `json:"manager,omitempty"`
	Inspector *string `json:"inspector,omitempty"`
}

// CancelShipmentRequest cancels a shipment with a mandatory reason.
type CancelShipmentRequest struct {
	Reason string `json:"reason"`
}

// AddEventRequest appends one entry to the shipment event log.
type AddEventRequest struct {
	Kind      string `json:"kind"`
	Location  string `json:"location"`
	EventType string `json:"eventType"`
}

// FeedbackRequest either rates the carrier or raises a dispute, depending on
// IsDispute. Feedback doubles as the dispute reason.
type FeedbackRequest struct {
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
	IsDispute bool   `json:"isDispute"`
}

// ResolveDisputeRequest settles an open dispute. FavorCreator selects the
// refund outcome; otherwise the carrier is paid.
type ResolveDisputeRequest struct {
	FavorCreator bool `json:"favorCreator"`
}

// SetAuthorizedRequest toggles an identity's allow-list membership.
type SetAuthorizedRequest struct {
	Identity    string `json:"identity"`
	IsInspector bool   `json:"isInspector"`
	Enabled     bool   `json:"enabled"`
}

// TransferAdminRequest hands the admin role to another identity.
type TransferAdminRequest struct {
	NewAdmin string `json:"newAdmin"`
}

// ShipmentResponse is the HTTP shape of the shipment read model.
type ShipmentResponse struct {
	TrackingCode       string    `json:"trackingCode"`
	ProductName        string    `json:"productName"`
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	Creator            string    `json:"creator"`
	Carrier            string    `json:"carrier"`
	WarehouseManager   *string   `json:"warehouseManager,omitempty"`
	QualityInspector   *string   `json:"qualityInspector,omitempty"`
	Status             string    `json:"status"`
	WarehouseConfirmed bool      `json:"warehouseConfirmed"`
	QualityApproved    bool      `json:"qualityApproved"`
	ReceiverConfirmed  bool      `json:"receiverConfirmed"`
	EscrowReleased     bool      `json:"escrowReleased"`
	EscrowRefunded     bool      `json:"escrowRefunded"`
	Rated              bool      `json:"rated"`
	Disputed           bool      `json:"disputed"`
	DepositAmount      int64     `json:"depositAmount"`
	ShippingFee        int64     `json:"shippingFee"`
	Rating             int       `json:"rating,omitempty"`
	Feedback           string    `json:"feedback,omitempty"`
	DisputeReason      string    `json:"disputeReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// EventResponse is one entry of the event log.
type EventResponse struct {
	Location   string    `json:"location"`
	EventType  string    `json:"eventType"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatusChangeResponse is one entry of the status history.
type StatusChangeResponse struct {
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	Actor      string    `json:"actor"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// CarrierRatingResponse is the scaled carrier average.
type CarrierRatingResponse struct {
	CarrierID       string `json:"carrierId"`
	AverageTimes100 int64  `json:"averageTimes100"`
}

// FullTrackingResponse combines the shipment state with both audit trails
// and the carrier's average rating, scaled by 100.
type FullTrackingResponse struct {
	Shipment               ShipmentResponse       `json:"shipment"`
	Events                 []EventResponse        `json:"events"`
	StatusHistory          []StatusChangeResponse `json:"statusHistory"`
	CarrierAverageTimes100 int64                  `json:"carrierAverageTimes100"`
}

// EscrowAnomalyResponse is one escrow consistency violation.
type EscrowAnomalyResponse struct {
	TrackingCode string `json:"trackingCode"`
	Anomaly      string `json:"anomaly"`
}
