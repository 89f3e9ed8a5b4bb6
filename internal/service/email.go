package service

import (
	"context"
	"fmt"

	"driveshare-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendBookingConfirmation(ctx context.Context, email, name, carModel string, totalAmount int64, pickupOTP string) error {
	subject := "Booking Confirmed"
	plainText := fmt.Sprintf("Your booking of %s is confirmed. Amount paid: %d. Share code %s with the owner at pickup.", carModel, totalAmount, pickupOTP)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Booking Confirmed</h2>
			<p>Your booking of <strong>%s</strong> is confirmed.</p>
			<p>Amount paid: <strong>%d</strong></p>
			<p>Share code <strong>%s</strong> with the owner at pickup.</p>
		</body></html>
	`, carModel, totalAmount, pickupOTP)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendCancellationNotice(ctx context.Context, email, name, carModel string, refundAmount int64, byOwner bool) error {
	who := "You"
	if byOwner {
		who = "The owner"
	}
	subject := "Booking Cancelled"
	plainText := fmt.Sprintf("%s cancelled the booking of %s. Refund of %d is ready to claim.", who, carModel, refundAmount)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Booking Cancelled</h2>
			<p>%s cancelled the booking of <strong>%s</strong>.</p>
			<p>A refund of <strong>%d</strong> is ready to claim from your account.</p>
		</body></html>
	`, who, carModel, refundAmount)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendCompensationCoupon(ctx context.Context, email, name, code string, discountPct int32) error {
	subject := "A Coupon For Your Next Trip"
	plainText := fmt.Sprintf("Sorry for the disruption. Use code %s for %d%% off your next booking.", code, discountPct)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>A Coupon For Your Next Trip</h2>
			<p>Sorry for the disruption. Use code <strong>%s</strong> for <strong>%d%%</strong> off your next booking.</p>
		</body></html>
	`, code, discountPct)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendPenaltyNotice(ctx context.Context, email, name string, amount int64, reason string) error {
	subject := "Penalty Charged to Your Account"
	plainText := fmt.Sprintf("A penalty of %d was charged to your account. Reason: %s.", amount, reason)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Penalty Charged</h2>
			<p>A penalty of <strong>%d</strong> was charged to your account.</p>
			<p>Reason: %s</p>
		</body></html>
	`, amount, reason)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendTripStarted(ctx context.Context, email, name, carModel, dropOTP string) error {
	subject := "Trip Started"
	plainText := fmt.Sprintf("Your trip with %s has started. Share code %s with the owner when you return the car.", carModel, dropOTP)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Trip Started</h2>
			<p>Your trip with <strong>%s</strong> has started.</p>
			<p>Share code <strong>%s</strong> with the owner when you return the car.</p>
		</body></html>
	`, carModel, dropOTP)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendTripCompleted(ctx context.Context, email, name, carModel string, lateFee int64) error {
	subject := "Trip Completed"
	lateLine := ""
	if lateFee > 0 {
		lateLine = fmt.Sprintf(" A late fee of %d was deducted from your deposit.", lateFee)
	}
	plainText := fmt.Sprintf("Your trip with %s is complete. Your deposit refund is ready to claim.%s", carModel, lateLine)
	htmlContent := fmt.Sprintf(`
		<html><body>
			<h2>Trip Completed</h2>
			<p>Your trip with <strong>%s</strong> is complete.</p>
			<p>Your deposit refund is ready to claim.%s</p>
		</body></html>
	`, carModel, lateLine)
	return s.send(email, name, subject, plainText, htmlContent)
}
