package dto

import (
	"time"

	"github.com/jeddaiwtf/EventRS/internal/models"
)

type EventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TicketResponse struct {
	ID         string              `json:"id"`
	EventID    string              `json:"event_id"`
	EventTitle string              `json:"event_title,omitempty"`
	Owner      string              `json:"owner,omitempty"`
	Status     models.TicketStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UsedAt     *time.Time          `json:"used_at,omitempty"`
	Signature  string              `json:"signature,omitempty"`
	QRURL      string              `json:"qr_url,omitempty"`
}

type IssueTicketResponse struct {
	TicketID  string `json:"ticket_id"`
	EventID   string `json:"event_id"`
	Payload   string `json:"payload"`
	QRURL     string `json:"qr_url,omitempty"`
	Signature string `json:"signature"`
	Warning   string `json:"warning,omitempty"`
}

// RedeemResponse deliberately omits the signature: redemption callers
// only need the outcome.
type RedeemResponse struct {
	Status   string     `json:"status"`
	Reason   string     `json:"reason,omitempty"`
	TicketID string     `json:"ticket_id,omitempty"`
	UsedAt   *time.Time `json:"used_at,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		CreatedAt:   e.CreatedAt,
	}
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:        t.ID,
		EventID:   t.EventID,
		Owner:     t.Owner,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UsedAt:    t.UsedAt,
		Signature: t.Signature,
		QRURL:     t.QRURL,
	}
	if t.Event != nil {
		resp.EventTitle = t.Event.Title
	}
	return resp
}
