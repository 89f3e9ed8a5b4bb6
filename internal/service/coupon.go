package service

import (
	"context"
	"errors"
	"fmt"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) ApplyCoupon(ctx context.Context, renterID int64, code, draftToken string) (*domain.Coupon, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: coupon code is required", domain.ErrValidation)
	}
	if draftToken == "" {
		return nil, fmt.Errorf("%w: draft token is required", domain.ErrValidation)
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// Legacy issuance stored unresolvable codes with a sentinel discount.
	// Those rows exist but must behave like the code does not.
	if coupon.DiscountPercentage == domain.InvalidDiscountSentinel {
		return nil, fmt.Errorf("coupon %s: %w", code, domain.ErrNotFound)
	}
	if coupon.DiscountPercentage < 1 || coupon.DiscountPercentage > 100 {
		return nil, fmt.Errorf("%w: coupon %s carries an invalid discount", domain.ErrValidation, code)
	}
	if coupon.RenterID != renterID {
		return nil, fmt.Errorf("coupon %s: %w", code, domain.ErrNotFound)
	}
	if coupon.Used {
		return nil, fmt.Errorf("coupon %s: %w", code, domain.ErrAlreadyUsed)
	}

	if err := s.couponRepo.Reserve(ctx, coupon.ID, draftToken); err != nil {
		return nil, err
	}

	logger.Info("coupon reserved",
		"coupon_id", coupon.ID, "renter_id", renterID, "discount", coupon.DiscountPercentage)
	return coupon, nil
}

func (s *couponService) ReleaseCoupon(ctx context.Context, renterID int64, draftToken string) error {
	coupon, err := s.couponRepo.GetByReservation(ctx, draftToken)
	if err != nil {
		if isNotFound(err) {
			// Nothing reserved under this draft; releasing is a no-op.
			return nil
		}
		return err
	}
	if coupon.RenterID != renterID {
		return fmt.Errorf("%w: reservation belongs to another renter", domain.ErrValidation)
	}
	return s.couponRepo.Release(ctx, coupon.ID, draftToken)
}
