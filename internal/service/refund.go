package service

import (
	"context"
	"fmt"
	"strings"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
)

type refundService struct {
	refundRepo repository.RefundRepository
}

func NewRefundService(refundRepo repository.RefundRepository) RefundService {
	return &refundService{refundRepo: refundRepo}
}

func (s *refundService) ClaimRefund(ctx context.Context, renterID, refundID int64, upiID string) (*domain.Refund, error) {
	if strings.TrimSpace(upiID) == "" {
		return nil, fmt.Errorf("%w: a UPI id is required to claim a refund", domain.ErrInvalidDestination)
	}

	refund, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund.RenterID != renterID {
		return nil, fmt.Errorf("%w: refund %d", domain.ErrNotFound, refundID)
	}

	if err := s.refundRepo.Claim(ctx, refundID, upiID); err != nil {
		return nil, err
	}

	refund.Status = domain.RefundStatusProcessing
	refund.UpiID = &upiID

	logger.Info("refund claimed",
		"refund_id", refundID, "renter_id", renterID, "amount", refund.RefundAmount)
	return refund, nil
}

func (s *refundService) ListRefunds(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Refund, int32, error) {
	return s.refundRepo.ListByRenter(ctx, renterID, page, pageSize)
}
