package models

import "time"

type TicketStatus string

const (
	StatusUnused  TicketStatus = "unused"
	StatusUsed    TicketStatus = "used"
	StatusExpired TicketStatus = "expired"
)

type Ticket struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	EventID string `gorm:"type:uuid;not null;index" json:"event_id"`
	Owner   string `json:"owner,omitempty"`

	// Token is a random redemption token distinct from the primary key,
	// so a scanned URL never carries the bare primary key.
	Token string `gorm:"uniqueIndex;not null" json:"token"`

	Status    TicketStatus `gorm:"type:varchar(10);not null;default:'unused'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UsedAt    *time.Time   `json:"used_at,omitempty"`

	// Signature is the hex HMAC over ID, set once at issuance.
	Signature string `json:"signature,omitempty"`
	QRURL     string `json:"qr_url,omitempty"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}
