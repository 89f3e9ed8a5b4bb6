package service_test

import (
	"context"
	"testing"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/gateway"
	"driveshare-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRefundService_ClaimRefund(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Refund {
		return &domain.Refund{ID: 5, BookingID: 42, RenterID: 1, RefundAmount: 668, Status: domain.RefundStatusPending}
	}

	t.Run("Success moves to processing", func(t *testing.T) {
		repo := new(MockRefundRepo)
		svc := service.NewRefundService(repo)
		repo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		repo.On("Claim", ctx, int64(5), "renter@upi").Return(nil)

		r, err := svc.ClaimRefund(ctx, 1, 5, "renter@upi")
		assert.NoError(t, err)
		assert.Equal(t, domain.RefundStatusProcessing, r.Status)
		assert.Equal(t, "renter@upi", *r.UpiID)
	})

	t.Run("Blank destination rejected before any lookup", func(t *testing.T) {
		repo := new(MockRefundRepo)
		svc := service.NewRefundService(repo)

		_, err := svc.ClaimRefund(ctx, 1, 5, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidDestination)
		repo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Second claim rejected", func(t *testing.T) {
		repo := new(MockRefundRepo)
		svc := service.NewRefundService(repo)
		repo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		repo.On("Claim", ctx, int64(5), "renter@upi").Return(domain.ErrAlreadyClaimed)

		_, err := svc.ClaimRefund(ctx, 1, 5, "renter@upi")
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	})

	t.Run("Other renter's refund invisible", func(t *testing.T) {
		repo := new(MockRefundRepo)
		svc := service.NewRefundService(repo)
		repo.On("GetByID", ctx, int64(5)).Return(pending(), nil)

		_, err := svc.ClaimRefund(ctx, 99, 5, "renter@upi")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPayoutService_ClaimPayout(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.Payout {
		return &domain.Payout{ID: 8, BookingID: 42, OwnerID: 10, PayoutAmount: 240, Status: domain.PayoutStatusPending}
	}

	t.Run("Success moves to processing", func(t *testing.T) {
		repo := new(MockPayoutRepo)
		svc := service.NewPayoutService(repo)
		repo.On("GetByID", ctx, int64(8)).Return(pending(), nil)
		repo.On("Claim", ctx, int64(8), "owner@upi").Return(nil)

		p, err := svc.ClaimPayout(ctx, 10, 8, "owner@upi")
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusProcessing, p.Status)
	})

	t.Run("Blank destination rejected", func(t *testing.T) {
		repo := new(MockPayoutRepo)
		svc := service.NewPayoutService(repo)

		_, err := svc.ClaimPayout(ctx, 10, 8, "")
		assert.ErrorIs(t, err, domain.ErrInvalidDestination)
	})

	t.Run("Second claim rejected", func(t *testing.T) {
		repo := new(MockPayoutRepo)
		svc := service.NewPayoutService(repo)
		repo.On("GetByID", ctx, int64(8)).Return(pending(), nil)
		repo.On("Claim", ctx, int64(8), "owner@upi").Return(domain.ErrAlreadyClaimed)

		_, err := svc.ClaimPayout(ctx, 10, 8, "owner@upi")
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	})
}

func TestPenaltyService(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (service.PenaltyService, *MockPenaltyRepo, *MockBookingRepo, *MockUserRepo, *MockGateway, *MockEmailService) {
		penaltyRepo := new(MockPenaltyRepo)
		bookingRepo := new(MockBookingRepo)
		userRepo := new(MockUserRepo)
		gw := new(MockGateway)
		emailSvc := new(MockEmailService)
		svc := service.NewPenaltyService(penaltyRepo, bookingRepo, userRepo, gw, emailSvc)
		return svc, penaltyRepo, bookingRepo, userRepo, gw, emailSvc
	}

	t.Run("ReportDamage on completed trip", func(t *testing.T) {
		svc, penaltyRepo, bookingRepo, userRepo, _, emailSvc := newSvc()
		bookingRepo.On("GetByID", ctx, int64(42)).Return(&domain.Booking{
			ID: 42, OwnerID: 10, RenterID: 1, Status: domain.BookingStatusCompleted,
		}, nil)
		penaltyRepo.On("Create", ctx, mock.AnythingOfType("*domain.Penalty")).Return(nil)
		userRepo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Email: "renter@test.com", Name: "Renter"}, nil)
		emailSvc.On("SendPenaltyNotice", ctx, "renter@test.com", "Renter", int64(300), "DAMAGE").Return(nil)

		p, err := svc.ReportDamage(ctx, 10, 42, 300, "scratched rear bumper")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), p.UserID)
		assert.Equal(t, domain.PenaltyReasonDamage, p.Reason)
		assert.Equal(t, domain.PenaltyUnpaid, p.PaymentStatus)
	})

	t.Run("ReportDamage on active trip rejected", func(t *testing.T) {
		svc, _, bookingRepo, _, _, _ := newSvc()
		bookingRepo.On("GetByID", ctx, int64(42)).Return(&domain.Booking{
			ID: 42, OwnerID: 10, RenterID: 1, Status: domain.BookingStatusPickedUp,
		}, nil)

		_, err := svc.ReportDamage(ctx, 10, 42, 300, "dent")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("CreatePenaltyOrder attaches gateway order", func(t *testing.T) {
		svc, penaltyRepo, _, _, gw, _ := newSvc()
		penaltyRepo.On("GetByID", ctx, int64(3)).Return(&domain.Penalty{
			ID: 3, UserID: 10, PenaltyAmount: 123, PaymentStatus: domain.PenaltyUnpaid,
		}, nil)
		gw.On("CreateOrder", ctx, int64(123), "penalty-3").Return(&gateway.Order{ID: "order_p3"}, nil)
		penaltyRepo.On("AttachGatewayOrder", ctx, int64(3), "order_p3").Return(nil)

		p, err := svc.CreatePenaltyOrder(ctx, 10, 3)
		assert.NoError(t, err)
		assert.Equal(t, "order_p3", *p.GatewayOrderID)
	})

	t.Run("Order for a paid penalty rejected", func(t *testing.T) {
		svc, penaltyRepo, _, _, _, _ := newSvc()
		penaltyRepo.On("GetByID", ctx, int64(3)).Return(&domain.Penalty{
			ID: 3, UserID: 10, PenaltyAmount: 123, PaymentStatus: domain.PenaltyPaid,
		}, nil)

		_, err := svc.CreatePenaltyOrder(ctx, 10, 3)
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	})

	t.Run("ConfirmPenaltyPayment verifies then marks paid", func(t *testing.T) {
		svc, penaltyRepo, _, _, gw, _ := newSvc()
		orderID := "order_p3"
		penaltyRepo.On("GetByID", ctx, int64(3)).Return(&domain.Penalty{
			ID: 3, UserID: 10, PenaltyAmount: 123,
			PaymentStatus: domain.PenaltyUnpaid, GatewayOrderID: &orderID,
		}, nil)
		gw.On("VerifySignature", "order_p3", "pay_p3", "sig").Return(nil)
		penaltyRepo.On("MarkPaid", ctx, int64(3), "pay_p3").Return(nil)

		p, err := svc.ConfirmPenaltyPayment(ctx, 10, 3, "order_p3", "pay_p3", "sig")
		assert.NoError(t, err)
		assert.Equal(t, domain.PenaltyPaid, p.PaymentStatus)
	})

	t.Run("Bad signature leaves penalty unpaid", func(t *testing.T) {
		svc, penaltyRepo, _, _, gw, _ := newSvc()
		orderID := "order_p3"
		penaltyRepo.On("GetByID", ctx, int64(3)).Return(&domain.Penalty{
			ID: 3, UserID: 10, PenaltyAmount: 123,
			PaymentStatus: domain.PenaltyUnpaid, GatewayOrderID: &orderID,
		}, nil)
		gw.On("VerifySignature", "order_p3", "pay_p3", "bad").Return(domain.ErrVerificationFailed)

		_, err := svc.ConfirmPenaltyPayment(ctx, 10, 3, "order_p3", "pay_p3", "bad")
		assert.ErrorIs(t, err, domain.ErrVerificationFailed)
		penaltyRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	})
}
