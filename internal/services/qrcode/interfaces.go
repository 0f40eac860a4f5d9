package qrcode

import (
	"context"

	"playpark/internal/models"
	"playpark/internal/services/access"

	"github.com/google/uuid"
)

// Service issues QR codes and drives their check-in lifecycle.
type Service interface {
	Generate(ctx context.Context, actor *access.Actor, req GenerateRequest) (*models.QRCode, error)

	// Get returns the code with its client and derived visit.
	Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.QRCode, error)
	GetActive(ctx context.Context, actor *access.Actor, clientID uuid.UUID) (*models.QRCode, error)

	// Image renders the code's check-in URL as a PNG.
	Image(ctx context.Context, actor *access.Actor, id uuid.UUID, size int) ([]byte, error)

	// Staff only.
	CheckIn(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.Visit, error)
	CheckOut(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.Visit, error)
}
