package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

type CouponHandler struct {
	coupons service.CouponService
}

func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type applyCouponRequest struct {
	Code       string `json:"code"`
	DraftToken string `json:"draft_token"`
}

func (h *CouponHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	coupon, err := h.coupons.ApplyCoupon(r.Context(), userID(r), req.Code, req.DraftToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}

type releaseCouponRequest struct {
	DraftToken string `json:"draft_token"`
}

func (h *CouponHandler) ReleaseCoupon(w http.ResponseWriter, r *http.Request) {
	var req releaseCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}
	if err := h.coupons.ReleaseCoupon(r.Context(), userID(r), req.DraftToken); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
