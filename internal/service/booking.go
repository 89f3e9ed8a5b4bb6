package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"driveshare-backend/internal/config"
	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/gateway"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	carRepo     repository.CarRepository
	userRepo    repository.UserRepository
	couponRepo  repository.CouponRepository
	refundRepo  repository.RefundRepository
	payoutRepo  repository.PayoutRepository
	penaltyRepo repository.PenaltyRepository
	gw          gateway.PaymentGateway
	emailSvc    EmailService
	policy      config.PolicyConfig
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	refundRepo repository.RefundRepository,
	payoutRepo repository.PayoutRepository,
	penaltyRepo repository.PenaltyRepository,
	gw gateway.PaymentGateway,
	emailSvc EmailService,
	policy config.PolicyConfig,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
		refundRepo:  refundRepo,
		payoutRepo:  payoutRepo,
		penaltyRepo: penaltyRepo,
		gw:          gw,
		emailSvc:    emailSvc,
		policy:      policy,
	}
}

// priceDraft computes the full amount breakdown for a window, including any
// coupon reserved under the draft token. Confirmation calls this again so the
// persisted snapshot never trusts client-supplied amounts.
func (s *bookingService) priceDraft(ctx context.Context, renterID, carID int64, start, end time.Time, draftToken string) (*BookingDraft, *domain.Car, *domain.Coupon, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !car.Rentable() {
		return nil, nil, nil, fmt.Errorf("%w: car %d is not available for booking", domain.ErrValidation, carID)
	}
	if car.OwnerID == renterID {
		return nil, nil, nil, fmt.Errorf("%w: cannot book your own car", domain.ErrValidation)
	}

	quote, err := utils.CalculateBookingQuote(car.PricePerHour, start, end, s.policy.DepositHourMultiple)
	if err != nil {
		return nil, nil, nil, err
	}

	var coupon *domain.Coupon
	var discount int64
	main := quote.SubAmount
	if draftToken != "" {
		coupon, err = s.couponRepo.GetByReservation(ctx, draftToken)
		if err != nil && !isNotFound(err) {
			return nil, nil, nil, err
		}
		if coupon != nil {
			if coupon.RenterID != renterID {
				return nil, nil, nil, fmt.Errorf("%w: coupon reservation belongs to another renter", domain.ErrValidation)
			}
			discount, main = utils.ApplyDiscount(quote.SubAmount, coupon.DiscountPercentage)
		}
	}

	draft := &BookingDraft{
		DraftToken:      draftToken,
		CarID:           carID,
		TotalHours:      quote.TotalHours,
		PricePerHour:    car.PricePerHour,
		SubAmount:       quote.SubAmount,
		DiscountAmount:  discount,
		MainAmount:      main,
		SecurityDeposit: quote.SecurityDeposit,
		TotalAmount:     main + quote.SecurityDeposit,
	}
	return draft, car, coupon, nil
}

func (s *bookingService) CreatePaymentOrder(ctx context.Context, renterID, carID int64, start, end time.Time, draftToken string) (*BookingDraft, error) {
	if draftToken == "" {
		draftToken = uuid.New().String()
	}

	draft, _, _, err := s.priceDraft(ctx, renterID, carID, start, end, draftToken)
	if err != nil {
		return nil, err
	}

	order, err := s.gw.CreateOrder(ctx, draft.TotalAmount, fmt.Sprintf("booking-%s", draftToken))
	if err != nil {
		return nil, err
	}
	draft.PaymentOrderID = order.ID

	logger.Info("payment order created",
		"renter_id", renterID, "car_id", carID,
		"order_id", order.ID, "total_amount", draft.TotalAmount)
	return draft, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, renterID int64, req ConfirmBookingRequest) (*domain.Booking, error) {
	// Verification comes first: a rejected proof must leave no booking row.
	if err := s.gw.VerifySignature(req.PaymentOrderID, req.PaymentID, req.Signature); err != nil {
		logger.Warn("payment verification failed",
			"renter_id", renterID, "order_id", req.PaymentOrderID)
		return nil, err
	}

	draft, car, coupon, err := s.priceDraft(ctx, renterID, req.CarID, req.StartTime, req.EndTime, req.DraftToken)
	if err != nil {
		return nil, err
	}

	pickupOTP, err := generateOTP()
	if err != nil {
		return nil, err
	}
	dropOTP, err := generateOTP()
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CarID:           car.ID,
		OwnerID:         car.OwnerID,
		RenterID:        renterID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		TotalHours:      draft.TotalHours,
		PricePerHour:    draft.PricePerHour,
		SubAmount:       draft.SubAmount,
		DiscountAmount:  draft.DiscountAmount,
		MainAmount:      draft.MainAmount,
		SecurityDeposit: draft.SecurityDeposit,
		TotalAmount:     draft.TotalAmount,
		PaymentOrderID:  req.PaymentOrderID,
		PaymentID:       req.PaymentID,
		PickupOTP:       pickupOTP,
		DropOTP:         dropOTP,
		Status:          domain.BookingStatusBooked,
	}
	if coupon != nil {
		booking.CouponID = &coupon.ID
		booking.CouponDiscount = coupon.DiscountPercentage
	}

	// The coupon burns before the insert so a booked row can never carry a
	// discount another draft also spent. A failed insert re-opens the coupon.
	if coupon != nil {
		if err := s.couponRepo.Burn(ctx, coupon.ID); err != nil {
			return nil, err
		}
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if coupon != nil {
			if restoreErr := s.couponRepo.Restore(ctx, coupon.ID, req.DraftToken); restoreErr != nil {
				logger.Error("coupon restore failed after booking create error",
					"coupon_id", coupon.ID, "error", restoreErr)
			}
		}
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err == nil {
		_ = s.emailSvc.SendBookingConfirmation(ctx, renter.Email, renter.Name, car.Model, booking.TotalAmount, pickupOTP)
	}

	logger.Info("booking confirmed",
		"booking_id", booking.ID, "renter_id", renterID, "car_id", car.ID,
		"total_amount", booking.TotalAmount)
	return booking, nil
}

func (s *bookingService) ConfirmPickup(ctx context.Context, ownerID, bookingID int64, otp string, photos domain.PhotoSet) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: booking %d does not belong to owner %d", domain.ErrNotFound, bookingID, ownerID)
	}
	if b.Status != domain.BookingStatusBooked {
		return nil, fmt.Errorf("%w: pickup requires status BOOKED, booking %d is %s", domain.ErrInvalidTransition, bookingID, b.Status)
	}
	if subtle.ConstantTimeCompare([]byte(b.PickupOTP), []byte(otp)) != 1 {
		return nil, fmt.Errorf("%w: pickup code mismatch", domain.ErrOTPMismatch)
	}
	if !photos.Complete() {
		return nil, fmt.Errorf("%w: front and rear pickup photos are required", domain.ErrValidation)
	}

	now := time.Now()
	b.Status = domain.BookingStatusPickedUp
	b.PickupTime = &now
	b.BeforePhotos = photos
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	// The renter needs the drop code in hand before the trip ends.
	renter, err := s.userRepo.GetByID(ctx, b.RenterID)
	if err == nil {
		car, carErr := s.carRepo.GetByID(ctx, b.CarID)
		model := ""
		if carErr == nil {
			model = car.Model
		}
		_ = s.emailSvc.SendTripStarted(ctx, renter.Email, renter.Name, model, b.DropOTP)
	}

	logger.Info("pickup confirmed", "booking_id", b.ID, "owner_id", ownerID)
	return b, nil
}

func (s *bookingService) ConfirmDrop(ctx context.Context, ownerID, bookingID int64, otp string, photos domain.PhotoSet) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: booking %d does not belong to owner %d", domain.ErrNotFound, bookingID, ownerID)
	}
	if b.Status != domain.BookingStatusPickedUp {
		return nil, fmt.Errorf("%w: drop requires status PICKED_UP, booking %d is %s", domain.ErrInvalidTransition, bookingID, b.Status)
	}
	if subtle.ConstantTimeCompare([]byte(b.DropOTP), []byte(otp)) != 1 {
		return nil, fmt.Errorf("%w: drop code mismatch", domain.ErrOTPMismatch)
	}
	if !photos.Complete() {
		return nil, fmt.Errorf("%w: front and rear drop photos are required", domain.ErrValidation)
	}

	now := time.Now()
	grace := time.Duration(s.policy.LateGraceMinutes) * time.Minute
	_, lateFee := utils.ComputeLateFee(b.EndTime, now, grace, s.policy.LateFeePerHour)

	// Settlement records land before the status flips: a booking only reads
	// COMPLETED once its refund, penalty and payout rows exist.
	// Deposit release: late fee comes out of the deposit, the rest goes back
	// to the renter as a claimable refund.
	refundAmount := b.SecurityDeposit - lateFee
	if refundAmount < 0 {
		refundAmount = 0
	}
	refund := &domain.Refund{
		BookingID:    b.ID,
		RenterID:     b.RenterID,
		Reason:       domain.RefundReasonRefundable,
		RefundAmount: refundAmount,
		Status:       domain.RefundStatusPending,
	}
	if lateFee > 0 {
		refund.DeductionAmount = lateFee
		refund.DeductionReason = string(domain.PenaltyReasonLateDrop)
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	// A fee larger than the deposit leaves a balance the renter still owes.
	if shortfall := lateFee - b.SecurityDeposit; shortfall > 0 {
		penalty := &domain.Penalty{
			BookingID:     b.ID,
			UserID:        b.RenterID,
			Reason:        domain.PenaltyReasonLateDrop,
			Note:          "late fee in excess of security deposit",
			PenaltyAmount: shortfall,
			PaymentStatus: domain.PenaltyUnpaid,
		}
		if err := s.penaltyRepo.Create(ctx, penalty); err != nil {
			return nil, err
		}
	}

	breakdown := utils.ComputePayout(b.TotalHours, b.PricePerHour, b.CouponDiscount, lateFee, s.policy.PlatformCommissionPercent)
	payout := &domain.Payout{
		BookingID:          b.ID,
		CarID:              b.CarID,
		OwnerID:            b.OwnerID,
		PricePerHour:       b.PricePerHour,
		TotalHours:         b.TotalHours,
		LateCharge:         breakdown.LateCharge,
		CouponDiscount:     b.CouponDiscount,
		PlatformCommission: breakdown.PlatformCommission,
		PayoutAmount:       breakdown.PayoutAmount,
		Status:             domain.PayoutStatusPending,
	}
	if err := s.payoutRepo.Create(ctx, payout); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatusCompleted
	b.DropTime = &now
	b.AfterPhotos = photos
	if lateFee > 0 {
		b.LateFeeCharged = true
		b.LateFeeAmount = lateFee
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, b.RenterID)
	if err == nil {
		car, carErr := s.carRepo.GetByID(ctx, b.CarID)
		model := ""
		if carErr == nil {
			model = car.Model
		}
		_ = s.emailSvc.SendTripCompleted(ctx, renter.Email, renter.Name, model, lateFee)
	}

	logger.Info("drop confirmed",
		"booking_id", b.ID, "late_fee", lateFee,
		"deposit_refund", refundAmount, "payout_amount", payout.PayoutAmount)
	return b, nil
}

func (s *bookingService) CancelByUser(ctx context.Context, renterID, bookingID int64) (*domain.Refund, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, fmt.Errorf("%w: booking %d does not belong to renter %d", domain.ErrNotFound, bookingID, renterID)
	}
	// Once the car is handed over there is no cancellation path, only drop.
	if b.Status != domain.BookingStatusBooked {
		return nil, fmt.Errorf("%w: cancellation requires status BOOKED, booking %d is %s", domain.ErrInvalidTransition, bookingID, b.Status)
	}

	breakdown := utils.ComputeRenterRefund(b, time.Now())

	b.Status = domain.BookingStatusCancelledByUser
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	refund := &domain.Refund{
		BookingID:       b.ID,
		RenterID:        b.RenterID,
		Reason:          domain.RefundReasonCancelledByUser,
		RefundAmount:    breakdown.TotalRefund,
		DeductionAmount: breakdown.Deduction,
		DeductionReason: fmt.Sprintf("cancellation charge at %d%% refund band", breakdown.RateApplied),
		Status:          domain.RefundStatusPending,
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err == nil {
		car, carErr := s.carRepo.GetByID(ctx, b.CarID)
		model := ""
		if carErr == nil {
			model = car.Model
		}
		_ = s.emailSvc.SendCancellationNotice(ctx, renter.Email, renter.Name, model, refund.RefundAmount, false)
	}

	logger.Info("booking cancelled by renter",
		"booking_id", b.ID, "refund_amount", refund.RefundAmount,
		"rate_applied", breakdown.RateApplied)
	return refund, nil
}

func (s *bookingService) CancelByOwner(ctx context.Context, ownerID, bookingID int64) (*domain.Refund, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: booking %d does not belong to owner %d", domain.ErrNotFound, bookingID, ownerID)
	}
	if b.Status != domain.BookingStatusBooked {
		return nil, fmt.Errorf("%w: cancellation requires status BOOKED, booking %d is %s", domain.ErrInvalidTransition, bookingID, b.Status)
	}

	breakdown := utils.ComputeOwnerCancelRefund(b)

	b.Status = domain.BookingStatusCancelledByOwner
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	refund := &domain.Refund{
		BookingID:    b.ID,
		RenterID:     b.RenterID,
		Reason:       domain.RefundReasonCancelledByOwner,
		RefundAmount: breakdown.TotalRefund,
		Status:       domain.RefundStatusPending,
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	// The renter is made whole twice over: full refund plus a compensation
	// coupon for the disruption. The owner carries a penalty for the same.
	coupon := &domain.Coupon{
		Code:               fmt.Sprintf("SORRY-%s", uuid.New().String()[:8]),
		RenterID:           b.RenterID,
		DiscountPercentage: s.policy.CompensationCouponPercent,
		IssuedFor:          string(domain.PenaltyReasonCancelledByOwner),
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	penalty := &domain.Penalty{
		BookingID:     b.ID,
		UserID:        ownerID,
		Reason:        domain.PenaltyReasonCancelledByOwner,
		PenaltyAmount: utils.PenaltyForAmount(b.TotalAmount, s.policy.OwnerCancelPenaltyPercent),
		PaymentStatus: domain.PenaltyUnpaid,
	}
	if err := s.penaltyRepo.Create(ctx, penalty); err != nil {
		return nil, err
	}

	renter, err := s.userRepo.GetByID(ctx, b.RenterID)
	if err == nil {
		car, carErr := s.carRepo.GetByID(ctx, b.CarID)
		model := ""
		if carErr == nil {
			model = car.Model
		}
		_ = s.emailSvc.SendCancellationNotice(ctx, renter.Email, renter.Name, model, refund.RefundAmount, true)
		_ = s.emailSvc.SendCompensationCoupon(ctx, renter.Email, renter.Name, coupon.Code, coupon.DiscountPercentage)
	}
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err == nil {
		_ = s.emailSvc.SendPenaltyNotice(ctx, owner.Email, owner.Name, penalty.PenaltyAmount, string(penalty.Reason))
	}

	logger.Info("booking cancelled by owner",
		"booking_id", b.ID, "refund_amount", refund.RefundAmount,
		"penalty_amount", penalty.PenaltyAmount, "coupon_code", coupon.Code)
	return refund, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != userID && b.OwnerID != userID {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}
	return b, nil
}

func (s *bookingService) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}
