package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"driveshare-backend/internal/domain"
)

// RazorpayGateway talks to a Razorpay-compatible orders API over HTTPS with
// basic auth. The caller's context bounds every request; the client timeout
// is the fallback ceiling.
type RazorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	currency  string
	client    *http.Client
}

func NewRazorpayGateway(baseURL, keyID, keySecret, currency string, timeout time.Duration) *RazorpayGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if currency == "" {
		currency = "INR"
	}
	return &RazorpayGateway{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
		client:    &http.Client{Timeout: timeout},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMajor int64, receipt string) (*Order, error) {
	if amountMajor <= 0 {
		return nil, fmt.Errorf("%w: order amount must be positive", domain.ErrValidation)
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   amountMajor * 100, // major -> minor units, only here
		Currency: g.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// Timeouts and transport failures are retryable gateway errors,
		// distinct from a definitive rejection.
		return nil, fmt.Errorf("%w: create order: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: create order: status %d: %s", domain.ErrGateway, resp.StatusCode, payload)
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: create order: decoding response: %v", domain.ErrGateway, err)
	}

	return &Order{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
	}, nil
}

// VerifySignature checks HMAC-SHA256(orderID|paymentID) against the supplied
// signature in constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return fmt.Errorf("%w: missing payment proof", domain.ErrVerificationFailed)
	}
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return fmt.Errorf("%w: signature mismatch for order %s", domain.ErrVerificationFailed, orderID)
	}
	return nil
}
