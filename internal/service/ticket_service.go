package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jeddaiwtf/EventRS/internal/clock"
	"github.com/jeddaiwtf/EventRS/internal/models"
	"github.com/jeddaiwtf/EventRS/internal/payload"
	"github.com/jeddaiwtf/EventRS/internal/repository"
	"github.com/jeddaiwtf/EventRS/internal/signature"
	"github.com/jeddaiwtf/EventRS/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrTicketExpired    = errors.New("ticket expired")
	ErrConflict         = errors.New("redemption conflict, retry")
)

// AlreadyUsedError rejects a second redemption and carries the time the
// ticket was first used, which never changes afterwards.
type AlreadyUsedError struct {
	UsedAt time.Time
}

func (e *AlreadyUsedError) Error() string {
	return fmt.Sprintf("ticket already used at %s", e.UsedAt.Format(time.RFC3339))
}

// QRRenderer turns a payload into an externally hosted scannable image.
type QRRenderer interface {
	Render(ctx context.Context, payload string) (string, error)
}

// IssuedTicket is the result of issuance. Payload is always present;
// QRURL is empty when the render collaborator was unavailable.
type IssuedTicket struct {
	Ticket  *models.Ticket
	Payload string
	QRURL   string
}

type TicketService interface {
	Issue(ctx context.Context, eventID, owner string) (*IssuedTicket, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	Redeem(ctx context.Context, raw string) (*models.Ticket, error)
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	eventRepo  repository.EventRepository
	signer     *signature.Signer
	renderer   QRRenderer
	publisher  *rabbitmq.Publisher
	clock      clock.Clock
}

func NewTicketService(
	ticketRepo repository.TicketRepository,
	eventRepo repository.EventRepository,
	signer *signature.Signer,
	renderer QRRenderer,
	publisher *rabbitmq.Publisher,
	clk clock.Clock,
) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		signer:     signer,
		renderer:   renderer,
		publisher:  publisher,
		clock:      clk,
	}
}

func (s *ticketService) Issue(ctx context.Context, eventID, owner string) (*IssuedTicket, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	ticket := &models.Ticket{
		ID:      uuid.NewString(),
		EventID: event.ID,
		Owner:   owner,
		Token:   newToken(),
		Status:  models.StatusUnused,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	sig := s.signer.Sign(ticket.ID)
	pl := payload.Encode(ticket.ID, sig)

	// Render failure degrades issuance, it never fails it: the caller
	// still gets the raw payload to present.
	qrURL := ""
	if s.renderer != nil {
		url, err := s.renderer.Render(ctx, pl)
		if err != nil {
			log.Printf("qr render unavailable for ticket %s: %v", ticket.ID, err)
		} else {
			qrURL = url
		}
	}

	if err := s.ticketRepo.SetIssued(ctx, ticket.ID, sig, qrURL); err != nil {
		return nil, fmt.Errorf("store signature: %w", err)
	}
	ticket.Signature = sig
	ticket.QRURL = qrURL

	if s.publisher != nil {
		_ = s.publisher.Publish("ticket.issued", ticket)
	}

	return &IssuedTicket{Ticket: ticket, Payload: pl, QRURL: qrURL}, nil
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// Redeem drives one scan through the full lifecycle: decode, signature
// gate, then a row-locked transaction applying the unused -> used
// transition. The signature is checked before any store access so forged
// ids never reach the database.
func (s *ticketService) Redeem(ctx context.Context, raw string) (*models.Ticket, error) {
	scanned, err := payload.Decode(raw)
	if err != nil {
		return nil, ErrMalformedPayload
	}

	if scanned.Signed() && !s.signer.Verify(scanned.TicketID, scanned.Signature) {
		return nil, ErrInvalidSignature
	}

	now := s.clock.Now()
	var redeemed *models.Ticket

	// Business rejections are carried out of the transaction via outcome
	// so that the expired-status write still commits; returning them as
	// the closure error would roll it back.
	var outcome error

	err = s.ticketRepo.WithTx(ctx, func(tx *gorm.DB) error {
		var ticket *models.Ticket
		var err error
		if scanned.Signed() {
			ticket, err = s.ticketRepo.FindByIDForUpdate(ctx, tx, scanned.TicketID)
		} else {
			ticket, err = s.ticketRepo.FindByTokenForUpdate(ctx, tx, scanned.Token)
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		event, err := s.eventRepo.FindByIDTx(ctx, tx, ticket.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		// Expiry is checked before the used check: once the event has
		// ended every scan reports expired, stale duplicates included.
		if event.EndAt != nil && event.EndAt.Before(now) {
			if ticket.Status == models.StatusUnused {
				if err := s.ticketRepo.MarkExpired(ctx, tx, ticket.ID); err != nil {
					return err
				}
			}
			outcome = ErrTicketExpired
			return nil
		}

		if ticket.Status == models.StatusUsed {
			usedAt := now
			if ticket.UsedAt != nil {
				usedAt = *ticket.UsedAt
			}
			outcome = &AlreadyUsedError{UsedAt: usedAt}
			return nil
		}
		if ticket.Status == models.StatusExpired {
			outcome = ErrTicketExpired
			return nil
		}

		if err := s.ticketRepo.MarkUsed(ctx, tx, ticket.ID, now); err != nil {
			return err
		}
		ticket.Status = models.StatusUsed
		ticket.UsedAt = &now
		redeemed = ticket
		return nil
	})
	if err != nil {
		if repository.IsLockContention(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	if outcome != nil {
		return nil, outcome
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("ticket.redeemed", redeemed)
	}

	return redeemed, nil
}

func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}
