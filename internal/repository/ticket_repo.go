package repository

import (
	"context"
	"time"

	"github.com/jeddaiwtf/EventRS/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id string) (*models.Ticket, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Ticket, error)
	FindByTokenForUpdate(ctx context.Context, tx *gorm.DB, token string) (*models.Ticket, error)
	SetIssued(ctx context.Context, ticketID, signature, qrURL string) error
	MarkUsed(ctx context.Context, tx *gorm.DB, ticketID string, usedAt time.Time) error
	MarkExpired(ctx context.Context, tx *gorm.DB, ticketID string) error
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// WithTx runs fn inside a database transaction; fn's error rolls the whole
// thing back, so a redemption either fully commits or leaves no trace.
func (r *ticketRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).Preload("Event").First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByIDForUpdate locks exactly one ticket row for the duration of the
// transaction, serializing concurrent redemptions of the same ticket.
func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByTokenForUpdate(ctx context.Context, tx *gorm.DB, token string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// SetIssued stores the signature and render URL computed at issuance.
// The signature is written once and never updated afterwards.
func (r *ticketRepository) SetIssued(ctx context.Context, ticketID, signature, qrURL string) error {
	return r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ? AND signature = ''", ticketID).
		Updates(map[string]any{"signature": signature, "qr_url": qrURL}).Error
}

func (r *ticketRepository) MarkUsed(ctx context.Context, tx *gorm.DB, ticketID string, usedAt time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Updates(map[string]any{"status": models.StatusUsed, "used_at": usedAt}).Error
}

func (r *ticketRepository) MarkExpired(ctx context.Context, tx *gorm.DB, ticketID string) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Update("status", models.StatusExpired).Error
}
