package events

import "time"

const LeadCapturedTopic = "crm.lead.captured.v1"

// LeadCapturedEvent dipublish saat lead dibuat atau diubah.
// Consumer memakai event ini untuk menghitung ulang skor lead.
type LeadCapturedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeadID     string    `json:"lead_id"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
