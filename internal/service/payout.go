package service

import (
	"context"
	"fmt"
	"strings"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
)

type payoutService struct {
	payoutRepo repository.PayoutRepository
}

func NewPayoutService(payoutRepo repository.PayoutRepository) PayoutService {
	return &payoutService{payoutRepo: payoutRepo}
}

func (s *payoutService) ClaimPayout(ctx context.Context, ownerID, payoutID int64, upiID string) (*domain.Payout, error) {
	if strings.TrimSpace(upiID) == "" {
		return nil, fmt.Errorf("%w: a UPI id is required to claim a payout", domain.ErrInvalidDestination)
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: payout %d", domain.ErrNotFound, payoutID)
	}

	if err := s.payoutRepo.Claim(ctx, payoutID, upiID); err != nil {
		return nil, err
	}

	payout.Status = domain.PayoutStatusProcessing
	payout.UpiID = &upiID

	logger.Info("payout claimed",
		"payout_id", payoutID, "owner_id", ownerID, "amount", payout.PayoutAmount)
	return payout, nil
}

func (s *payoutService) ListPayouts(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Payout, int32, error) {
	return s.payoutRepo.ListByOwner(ctx, ownerID, page, pageSize)
}
