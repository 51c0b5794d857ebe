package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jeddaiwtf/EventRS/internal/dto"
	"github.com/jeddaiwtf/EventRS/internal/payload"
	"github.com/jeddaiwtf/EventRS/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/events/:id/tickets", h.IssueTicket)
	e.GET("/api/v1/tickets/:id", h.GetTicket)
	e.POST("/api/v1/tickets/redeem", h.RedeemTicket)
}

func (h *TicketHandler) IssueTicket(c echo.Context) error {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.IssueTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	issued, err := h.svc.Issue(c.Request().Context(), eventID, req.Owner)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.IssueTicketResponse{
		TicketID:  issued.Ticket.ID,
		EventID:   issued.Ticket.EventID,
		Payload:   issued.Payload,
		QRURL:     issued.QRURL,
		Signature: issued.Ticket.Signature,
	}
	if issued.QRURL == "" {
		resp.Warning = "qr_api_failed"
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *TicketHandler) GetTicket(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	ticket, err := h.svc.GetTicket(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

// RedeemTicket answers with the original scanner protocol: a status/reason
// envelope, never the stored signature, and nothing that confirms a
// ticket exists before its signature verified.
func (h *TicketHandler) RedeemTicket(c echo.Context) error {
	var req dto.RedeemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	raw := req.Payload
	if raw == "" && req.TicketID != "" && req.Signature != "" {
		raw = payload.Encode(req.TicketID, req.Signature)
	}

	ticket, err := h.svc.Redeem(c.Request().Context(), raw)
	if err != nil {
		var used *service.AlreadyUsedError
		switch {
		case errors.Is(err, service.ErrMalformedPayload):
			return c.JSON(http.StatusBadRequest, dto.RedeemResponse{Status: "error", Reason: "invalid_payload"})
		case errors.Is(err, service.ErrInvalidSignature):
			return c.JSON(http.StatusForbidden, dto.RedeemResponse{Status: "error", Reason: "invalid_signature"})
		case errors.Is(err, service.ErrTicketNotFound):
			return c.JSON(http.StatusNotFound, dto.RedeemResponse{Status: "error", Reason: "not_found"})
		case errors.As(err, &used):
			return c.JSON(http.StatusConflict, dto.RedeemResponse{Status: "error", Reason: "already_used", UsedAt: &used.UsedAt})
		case errors.Is(err, service.ErrTicketExpired):
			return c.JSON(http.StatusGone, dto.RedeemResponse{Status: "error", Reason: "event_expired"})
		case errors.Is(err, service.ErrConflict):
			return c.JSON(http.StatusConflict, dto.RedeemResponse{Status: "error", Reason: "conflict"})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.RedeemResponse{
		Status:   "ok",
		TicketID: ticket.ID,
		UsedAt:   ticket.UsedAt,
	})
}
