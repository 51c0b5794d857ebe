package dto

import "time"

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
}

type IssueTicketRequest struct {
	Owner string `json:"owner"`
}

// RedeemRequest accepts either a full scanned payload or the id and
// signature as separate fields; exactly one shape is expected.
type RedeemRequest struct {
	Payload   string `json:"payload"`
	TicketID  string `json:"ticket_id"`
	Signature string `json:"signature"`
}
