package service_test

import (
	"context"
	"testing"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestCouponService_ApplyCoupon(t *testing.T) {
	ctx := context.Background()

	valid := func() *domain.Coupon {
		return &domain.Coupon{ID: 7, Code: "WELCOME20", RenterID: 1, DiscountPercentage: 20}
	}

	t.Run("Success reserves under draft token", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		repo.On("GetByCode", ctx, "WELCOME20").Return(valid(), nil)
		repo.On("Reserve", ctx, int64(7), "draft-1").Return(nil)

		c, err := svc.ApplyCoupon(ctx, 1, "WELCOME20", "draft-1")
		assert.NoError(t, err)
		assert.Equal(t, int32(20), c.DiscountPercentage)
		repo.AssertCalled(t, "Reserve", ctx, int64(7), "draft-1")
	})

	t.Run("Sentinel discount reads as unknown code", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		c := valid()
		c.DiscountPercentage = domain.InvalidDiscountSentinel
		repo.On("GetByCode", ctx, "WELCOME20").Return(c, nil)

		_, err := svc.ApplyCoupon(ctx, 1, "WELCOME20", "draft-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Out-of-range discount rejected", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		c := valid()
		c.DiscountPercentage = 120
		repo.On("GetByCode", ctx, "WELCOME20").Return(c, nil)

		_, err := svc.ApplyCoupon(ctx, 1, "WELCOME20", "draft-1")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Another renter's coupon invisible", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		repo.On("GetByCode", ctx, "WELCOME20").Return(valid(), nil)

		_, err := svc.ApplyCoupon(ctx, 99, "WELCOME20", "draft-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Used coupon rejected", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		c := valid()
		c.Used = true
		repo.On("GetByCode", ctx, "WELCOME20").Return(c, nil)

		_, err := svc.ApplyCoupon(ctx, 1, "WELCOME20", "draft-1")
		assert.ErrorIs(t, err, domain.ErrAlreadyUsed)
	})

	t.Run("Lost reservation race surfaces", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		repo.On("GetByCode", ctx, "WELCOME20").Return(valid(), nil)
		repo.On("Reserve", ctx, int64(7), "draft-1").Return(domain.ErrAlreadyUsed)

		_, err := svc.ApplyCoupon(ctx, 1, "WELCOME20", "draft-1")
		assert.ErrorIs(t, err, domain.ErrAlreadyUsed)
	})
}

func TestCouponService_ReleaseCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("Release clears the reservation", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		repo.On("GetByReservation", ctx, "draft-1").Return(&domain.Coupon{ID: 7, RenterID: 1}, nil)
		repo.On("Release", ctx, int64(7), "draft-1").Return(nil)

		assert.NoError(t, svc.ReleaseCoupon(ctx, 1, "draft-1"))
	})

	t.Run("Nothing reserved is a no-op", func(t *testing.T) {
		repo := new(MockCouponRepo)
		svc := service.NewCouponService(repo)
		repo.On("GetByReservation", ctx, "draft-1").Return(nil, domain.ErrNotFound)

		assert.NoError(t, svc.ReleaseCoupon(ctx, 1, "draft-1"))
	})
}
