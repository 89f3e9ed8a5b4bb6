package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"driveshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	t.Run("Success converts to minor units", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/orders", r.URL.Path)
			var req createOrderRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, int64(82000), req.Amount) // 820 major units
			assert.Equal(t, "INR", req.Currency)
			json.NewEncoder(w).Encode(createOrderResponse{
				ID: "order_123", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt,
			})
		}))
		defer srv.Close()

		g := NewRazorpayGateway(srv.URL, "key", "secret", "INR", 5*time.Second)
		order, err := g.CreateOrder(context.Background(), 820, "rcpt-1")
		assert.NoError(t, err)
		assert.Equal(t, "order_123", order.ID)
		assert.Equal(t, int64(82000), order.Amount)
	})

	t.Run("Non-2xx is a retryable gateway error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		}))
		defer srv.Close()

		g := NewRazorpayGateway(srv.URL, "key", "secret", "INR", 5*time.Second)
		_, err := g.CreateOrder(context.Background(), 500, "rcpt-2")
		assert.ErrorIs(t, err, domain.ErrGateway)
	})

	t.Run("Zero amount rejected locally", func(t *testing.T) {
		g := NewRazorpayGateway("http://unused", "key", "secret", "INR", time.Second)
		_, err := g.CreateOrder(context.Background(), 0, "rcpt-3")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRazorpayGateway_VerifySignature(t *testing.T) {
	g := NewRazorpayGateway("http://unused", "key", "secret", "INR", time.Second)

	sign := func(orderID, paymentID string) string {
		mac := hmac.New(sha256.New, []byte("secret"))
		mac.Write([]byte(orderID + "|" + paymentID))
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("Valid signature accepted", func(t *testing.T) {
		err := g.VerifySignature("order_1", "pay_1", sign("order_1", "pay_1"))
		assert.NoError(t, err)
	})

	t.Run("Tampered signature rejected", func(t *testing.T) {
		err := g.VerifySignature("order_1", "pay_1", sign("order_1", "pay_2"))
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	})

	t.Run("Missing proof rejected", func(t *testing.T) {
		err := g.VerifySignature("order_1", "", "")
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	})
}
