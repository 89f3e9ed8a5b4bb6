package service_test

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/gateway"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Car, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Car), args.Get(1).(int32), args.Error(2)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListOverdueDrops(ctx context.Context, asOf time.Time, grace time.Duration) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf, grace)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockCouponRepo
type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) Create(ctx context.Context, coupon *domain.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}
func (m *MockCouponRepo) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) GetByReservation(ctx context.Context, draftToken string) (*domain.Coupon, error) {
	args := m.Called(ctx, draftToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) Reserve(ctx context.Context, id int64, draftToken string) error {
	args := m.Called(ctx, id, draftToken)
	return args.Error(0)
}
func (m *MockCouponRepo) Release(ctx context.Context, id int64, draftToken string) error {
	args := m.Called(ctx, id, draftToken)
	return args.Error(0)
}
func (m *MockCouponRepo) Burn(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCouponRepo) Restore(ctx context.Context, id int64, draftToken string) error {
	args := m.Called(ctx, id, draftToken)
	return args.Error(0)
}
func (m *MockCouponRepo) ReleaseStaleReservations(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockRefundRepo
type MockRefundRepo struct {
	mock.Mock
}

func (m *MockRefundRepo) Create(ctx context.Context, refund *domain.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}
func (m *MockRefundRepo) GetByID(ctx context.Context, id int64) (*domain.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockRefundRepo) Claim(ctx context.Context, id int64, upiID string) error {
	args := m.Called(ctx, id, upiID)
	return args.Error(0)
}
func (m *MockRefundRepo) MarkCompleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRefundRepo) ListByRenter(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Refund, int32, error) {
	args := m.Called(ctx, renterID, page, pageSize)
	return args.Get(0).([]domain.Refund), args.Get(1).(int32), args.Error(2)
}
func (m *MockRefundRepo) SettleProcessing(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockPenaltyRepo
type MockPenaltyRepo struct {
	mock.Mock
}

func (m *MockPenaltyRepo) Create(ctx context.Context, penalty *domain.Penalty) error {
	args := m.Called(ctx, penalty)
	return args.Error(0)
}
func (m *MockPenaltyRepo) GetByID(ctx context.Context, id int64) (*domain.Penalty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Penalty), args.Error(1)
}
func (m *MockPenaltyRepo) AttachGatewayOrder(ctx context.Context, id int64, orderID string) error {
	args := m.Called(ctx, id, orderID)
	return args.Error(0)
}
func (m *MockPenaltyRepo) MarkPaid(ctx context.Context, id int64, paymentID string) error {
	args := m.Called(ctx, id, paymentID)
	return args.Error(0)
}
func (m *MockPenaltyRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Penalty, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Penalty), args.Get(1).(int32), args.Error(2)
}

// MockPayoutRepo
type MockPayoutRepo struct {
	mock.Mock
}

func (m *MockPayoutRepo) Create(ctx context.Context, payout *domain.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}
func (m *MockPayoutRepo) GetByID(ctx context.Context, id int64) (*domain.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}
func (m *MockPayoutRepo) Claim(ctx context.Context, id int64, upiID string) error {
	args := m.Called(ctx, id, upiID)
	return args.Error(0)
}
func (m *MockPayoutRepo) MarkClaimed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPayoutRepo) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Payout, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Payout), args.Get(1).(int32), args.Error(2)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMajor int64, receipt string) (*gateway.Order, error) {
	args := m.Called(ctx, amountMajor, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Order), args.Error(1)
}
func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) error {
	args := m.Called(orderID, paymentID, signature)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name, carModel string, totalAmount int64, pickupOTP string) error {
	args := m.Called(ctx, email, name, carModel, totalAmount, pickupOTP)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotice(ctx context.Context, email, name, carModel string, refundAmount int64, byOwner bool) error {
	args := m.Called(ctx, email, name, carModel, refundAmount, byOwner)
	return args.Error(0)
}
func (m *MockEmailService) SendCompensationCoupon(ctx context.Context, email, name, code string, discountPct int32) error {
	args := m.Called(ctx, email, name, code, discountPct)
	return args.Error(0)
}
func (m *MockEmailService) SendPenaltyNotice(ctx context.Context, email, name string, amount int64, reason string) error {
	args := m.Called(ctx, email, name, amount, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendTripStarted(ctx context.Context, email, name, carModel, dropOTP string) error {
	args := m.Called(ctx, email, name, carModel, dropOTP)
	return args.Error(0)
}
func (m *MockEmailService) SendTripCompleted(ctx context.Context, email, name, carModel string, lateFee int64) error {
	args := m.Called(ctx, email, name, carModel, lateFee)
	return args.Error(0)
}
