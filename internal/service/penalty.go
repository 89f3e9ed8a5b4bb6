package service

import (
	"context"
	"fmt"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/gateway"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
)

type penaltyService struct {
	penaltyRepo repository.PenaltyRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	gw          gateway.PaymentGateway
	emailSvc    EmailService
}

func NewPenaltyService(
	penaltyRepo repository.PenaltyRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	gw gateway.PaymentGateway,
	emailSvc EmailService,
) PenaltyService {
	return &penaltyService{
		penaltyRepo: penaltyRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		gw:          gw,
		emailSvc:    emailSvc,
	}
}

func (s *penaltyService) ReportDamage(ctx context.Context, ownerID, bookingID int64, amount int64, note string) (*domain.Penalty, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: damage amount must be positive", domain.ErrValidation)
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}
	if b.Status != domain.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: damage can only be reported on a completed trip, booking %d is %s", domain.ErrInvalidTransition, bookingID, b.Status)
	}

	penalty := &domain.Penalty{
		BookingID:     bookingID,
		UserID:        b.RenterID,
		Reason:        domain.PenaltyReasonDamage,
		Note:          note,
		PenaltyAmount: amount,
		PaymentStatus: domain.PenaltyUnpaid,
	}
	if err := s.penaltyRepo.Create(ctx, penalty); err != nil {
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, b.RenterID)
	if err == nil {
		_ = s.emailSvc.SendPenaltyNotice(ctx, renter.Email, renter.Name, amount, string(domain.PenaltyReasonDamage))
	}

	logger.Info("damage penalty opened",
		"penalty_id", penalty.ID, "booking_id", bookingID, "amount", amount)
	return penalty, nil
}

func (s *penaltyService) CreatePenaltyOrder(ctx context.Context, userID, penaltyID int64) (*domain.Penalty, error) {
	penalty, err := s.penaltyRepo.GetByID(ctx, penaltyID)
	if err != nil {
		return nil, err
	}
	if penalty.UserID != userID {
		return nil, fmt.Errorf("%w: penalty %d", domain.ErrNotFound, penaltyID)
	}
	if penalty.PaymentStatus != domain.PenaltyUnpaid {
		return nil, fmt.Errorf("penalty %d: %w", penaltyID, domain.ErrAlreadyClaimed)
	}

	order, err := s.gw.CreateOrder(ctx, penalty.PenaltyAmount, fmt.Sprintf("penalty-%d", penaltyID))
	if err != nil {
		return nil, err
	}
	if err := s.penaltyRepo.AttachGatewayOrder(ctx, penaltyID, order.ID); err != nil {
		return nil, err
	}

	penalty.GatewayOrderID = &order.ID
	return penalty, nil
}

func (s *penaltyService) ConfirmPenaltyPayment(ctx context.Context, userID, penaltyID int64, orderID, paymentID, signature string) (*domain.Penalty, error) {
	penalty, err := s.penaltyRepo.GetByID(ctx, penaltyID)
	if err != nil {
		return nil, err
	}
	if penalty.UserID != userID {
		return nil, fmt.Errorf("%w: penalty %d", domain.ErrNotFound, penaltyID)
	}
	if penalty.GatewayOrderID == nil || *penalty.GatewayOrderID != orderID {
		return nil, fmt.Errorf("%w: order does not match penalty %d", domain.ErrValidation, penaltyID)
	}

	if err := s.gw.VerifySignature(orderID, paymentID, signature); err != nil {
		return nil, err
	}

	if err := s.penaltyRepo.MarkPaid(ctx, penaltyID, paymentID); err != nil {
		return nil, err
	}

	penalty.PaymentStatus = domain.PenaltyPaid
	penalty.GatewayPaymentID = &paymentID

	logger.Info("penalty paid",
		"penalty_id", penaltyID, "user_id", userID, "amount", penalty.PenaltyAmount)
	return penalty, nil
}

func (s *penaltyService) ListPenalties(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Penalty, int32, error) {
	return s.penaltyRepo.ListByUser(ctx, userID, page, pageSize)
}
