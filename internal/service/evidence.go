package service

import (
	"context"
	"fmt"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/storage"

	"github.com/google/uuid"
)

var allowedAngles = map[string]bool{
	"front":    true,
	"rear":     true,
	"left":     true,
	"right":    true,
	"interior": true,
}

type evidenceService struct {
	bookingRepo repository.BookingRepository
	store       storage.StorageInterface
	urlExpiry   time.Duration
}

func NewEvidenceService(bookingRepo repository.BookingRepository, store storage.StorageInterface, urlExpiry time.Duration) EvidenceService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &evidenceService{
		bookingRepo: bookingRepo,
		store:       store,
		urlExpiry:   urlExpiry,
	}
}

func (s *evidenceService) GetUploadURL(ctx context.Context, userID, bookingID int64, angle, contentType string) (string, string, error) {
	if !allowedAngles[angle] {
		return "", "", fmt.Errorf("%w: unknown photo angle %q", domain.ErrValidation, angle)
	}
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", "", fmt.Errorf("%w: content type %q not allowed", domain.ErrValidation, contentType)
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return "", "", err
	}
	if b.OwnerID != userID && b.RenterID != userID {
		return "", "", fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}
	if b.Status.Terminal() {
		return "", "", fmt.Errorf("%w: booking %d already settled", domain.ErrInvalidTransition, bookingID)
	}

	key := fmt.Sprintf("bookings/%d/%s-%s", bookingID, angle, uuid.New().String())
	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, s.urlExpiry)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return uploadURL, key, nil
}
