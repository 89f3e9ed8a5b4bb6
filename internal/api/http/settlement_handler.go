package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

// SettlementHandler serves refunds, payouts and penalties. They share the
// claim-with-destination shape so they live together.
type SettlementHandler struct {
	refunds   service.RefundService
	payouts   service.PayoutService
	penalties service.PenaltyService
}

func NewSettlementHandler(refunds service.RefundService, payouts service.PayoutService, penalties service.PenaltyService) *SettlementHandler {
	return &SettlementHandler{refunds: refunds, payouts: payouts, penalties: penalties}
}

type claimRequest struct {
	UpiID string `json:"upi_id"`
}

func (h *SettlementHandler) ClaimRefund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	refund, err := h.refunds.ClaimRefund(r.Context(), userID(r), id, req.UpiID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refund)
}

func (h *SettlementHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.refunds.ListRefunds(r.Context(), userID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *SettlementHandler) ClaimPayout(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	payout, err := h.payouts.ClaimPayout(r.Context(), userID(r), id, req.UpiID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payout)
}

func (h *SettlementHandler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.payouts.ListPayouts(r.Context(), userID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

type reportDamageRequest struct {
	BookingID int64  `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note"`
}

func (h *SettlementHandler) ReportDamage(w http.ResponseWriter, r *http.Request) {
	var req reportDamageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	penalty, err := h.penalties.ReportDamage(r.Context(), userID(r), req.BookingID, req.Amount, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, penalty)
}

func (h *SettlementHandler) CreatePenaltyOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	penalty, err := h.penalties.CreatePenaltyOrder(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penalty)
}

type confirmPenaltyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func (h *SettlementHandler) ConfirmPenaltyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req confirmPenaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	penalty, err := h.penalties.ConfirmPenaltyPayment(r.Context(), userID(r), id, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penalty)
}

func (h *SettlementHandler) ListPenalties(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.penalties.ListPenalties(r.Context(), userID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}
