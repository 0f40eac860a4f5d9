package qrcode

import (
	"time"

	"playpark/internal/repositories"

	"go.uber.org/zap"
)

// GenerateRequest keeps client_id as text so malformed ids get their own error.
type GenerateRequest struct {
	ClientID string `json:"client_id"`
}

type Dependencies struct {
	QRCodes       repositories.QRCodeRepository
	Clients       repositories.ClientRepository
	Groups        repositories.ClientGroupRepository
	Visits        repositories.VisitRepository
	PlanInstances repositories.PlanInstanceRepository
	PublicBaseURL string
	Logger        *zap.Logger
	Now           func() time.Time
}
