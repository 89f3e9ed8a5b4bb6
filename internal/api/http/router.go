package http

import (
	"net/http"

	"driveshare-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires every handler under /api/v1. Everything except the mock
// storage endpoints requires a valid bearer token.
func NewRouter(
	tokens security.TokenManager,
	bookings *BookingHandler,
	coupons *CouponHandler,
	settlement *SettlementHandler,
	evidence *EvidenceHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Presigned upload/download targets carry their own token in the URL.
	api.HandleFunc("/upload/{token}", evidence.Upload).Methods(http.MethodPut, http.MethodPost)
	api.HandleFunc("/download/{token}", evidence.Download).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/bookings/order", bookings.CreatePaymentOrder).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", bookings.ConfirmBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", bookings.ListBookings).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}", bookings.GetBooking).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}/pickup", bookings.ConfirmPickup).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/drop", bookings.ConfirmDrop).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/cancel", bookings.CancelByUser).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/owner-cancel", bookings.CancelByOwner).Methods(http.MethodPost)

	authed.HandleFunc("/coupons/apply", coupons.ApplyCoupon).Methods(http.MethodPost)
	authed.HandleFunc("/coupons/release", coupons.ReleaseCoupon).Methods(http.MethodPost)

	authed.HandleFunc("/refunds", settlement.ListRefunds).Methods(http.MethodGet)
	authed.HandleFunc("/refunds/{id}/claim", settlement.ClaimRefund).Methods(http.MethodPost)
	authed.HandleFunc("/payouts", settlement.ListPayouts).Methods(http.MethodGet)
	authed.HandleFunc("/payouts/{id}/claim", settlement.ClaimPayout).Methods(http.MethodPost)

	authed.HandleFunc("/penalties", settlement.ListPenalties).Methods(http.MethodGet)
	authed.HandleFunc("/penalties/damage", settlement.ReportDamage).Methods(http.MethodPost)
	authed.HandleFunc("/penalties/{id}/order", settlement.CreatePenaltyOrder).Methods(http.MethodPost)
	authed.HandleFunc("/penalties/{id}/pay", settlement.ConfirmPenaltyPayment).Methods(http.MethodPost)

	authed.HandleFunc("/evidence/upload-url", evidence.GetUploadURL).Methods(http.MethodPost)

	return r
}
