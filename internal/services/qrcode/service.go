package qrcode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"playpark/internal/domain/qr"
	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/metrics"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	qrCodes   repositories.QRCodeRepository
	clients   repositories.ClientRepository
	groups    repositories.ClientGroupRepository
	visits    repositories.VisitRepository
	instances repositories.PlanInstanceRepository
	baseURL   string
	log       *zap.Logger
	now       func() time.Time
}

func NewService(deps Dependencies) Service {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		qrCodes:   deps.QRCodes,
		clients:   deps.Clients,
		groups:    deps.Groups,
		visits:    deps.Visits,
		instances: deps.PlanInstances,
		baseURL:   deps.PublicBaseURL,
		log:       logger.OrNop(deps.Logger),
		now:       now,
	}
}

func (s *service) Generate(ctx context.Context, actor *access.Actor, req GenerateRequest) (*models.QRCode, error) {
	raw := strings.TrimSpace(req.ClientID)
	if raw == "" {
		return nil, appErrors.ErrMissingClientID
	}
	clientID, err := uuid.Parse(raw)
	if err != nil {
		return nil, appErrors.ErrInvalidClientID
	}

	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client.GroupID == nil {
		return nil, appErrors.ErrNoGroup
	}
	groupID := *client.GroupID

	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrClientGroupNotFound
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if !(actor.IsSuperuser() || actor.MemberOf(groupID) || actor.AdminOf(groupID)) {
		return nil, appErrors.ErrQRGenerateDenied
	}

	code := &models.QRCode{
		ClientID:      client.ID,
		ClientGroupID: &groupID,
		State:         models.QRStatePending,
	}
	if err := s.qrCodes.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create qr code: %w", err)
	}
	code.Client = client
	metrics.QRCodesIssued.Inc()

	s.log.Info("qr code generated",
		zap.String("qr_code_id", code.ID.String()),
		zap.String("client_id", client.ID.String()),
	)
	return code, nil
}

func (s *service) Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.QRCode, error) {
	code, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, code) {
		return nil, appErrors.ErrQRAccessDenied
	}

	visit, err := s.deriveVisit(ctx, code)
	if err != nil {
		return nil, err
	}
	code.Visit = visit
	return code, nil
}

// deriveVisit prefers the linked visit and falls back to the holder's latest
// one once the code has been scanned.
func (s *service) deriveVisit(ctx context.Context, code *models.QRCode) (*models.Visit, error) {
	var (
		visit *models.Visit
		err   error
	)
	switch {
	case code.VisitID != nil:
		visit, err = s.visits.GetByID(ctx, *code.VisitID)
	case code.State == models.QRStateInUse || code.State == models.QRStateUsed:
		visit, err = s.visits.LatestForClient(ctx, code.ClientID)
	default:
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load visit: %w", err)
	}
	return visit, nil
}

func (s *service) GetActive(ctx context.Context, actor *access.Actor, clientID uuid.UUID) (*models.QRCode, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	allowed := actor.IsStaff() || actor.Is(client.ID) ||
		(client.GroupID != nil && actor.MemberOf(*client.GroupID))
	if !allowed {
		return nil, appErrors.ErrQRAccessDenied
	}

	code, err := s.qrCodes.LatestActiveForClient(ctx, client.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrNoActiveQR
		}
		return nil, fmt.Errorf("failed to load active qr code: %w", err)
	}
	code.Client = client
	return code, nil
}

func (s *service) Image(ctx context.Context, actor *access.Actor, id uuid.UUID, size int) ([]byte, error) {
	code, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, code) {
		return nil, appErrors.ErrQRAccessDenied
	}

	png, err := qr.Render(qr.ImageRequest{BaseURL: s.baseURL, CodeID: code.ID, Size: size})
	if err != nil {
		return nil, appErrors.BadRequest(err.Error())
	}
	return png, nil
}

func (s *service) CheckIn(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.Visit, error) {
	if !actor.IsStaff() {
		return nil, appErrors.ErrStaffRequired
	}
	code, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if code.State != models.QRStatePending {
		return nil, appErrors.ErrQRNotPending
	}

	now := s.now()
	instanceID, err := s.currentInstance(ctx, code, now)
	if err != nil {
		return nil, err
	}

	visit := &models.Visit{
		ClientID: code.ClientID,
		QRCodeID: &code.ID,
		CheckIn:  now,
	}
	if err := s.qrCodes.CheckIn(ctx, code, visit, instanceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrQRNotPending
		}
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	metrics.CheckIns.WithLabelValues(qr.ActionCheckIn.String()).Inc()

	s.log.Info("client checked in",
		zap.String("qr_code_id", code.ID.String()),
		zap.String("visit_id", visit.ID.String()),
		zap.Bool("plan_entry_used", visit.PlanInstanceID != nil),
	)
	return visit, nil
}

func (s *service) CheckOut(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.Visit, error) {
	if !actor.IsStaff() {
		return nil, appErrors.ErrStaffRequired
	}
	code, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if code.State != models.QRStateInUse {
		return nil, appErrors.ErrQRNotInUse
	}
	if code.VisitID == nil {
		return nil, appErrors.ErrVisitNotFound
	}

	visit, err := s.visits.GetByID(ctx, *code.VisitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to load visit: %w", err)
	}
	visit.Close(s.now())

	if err := s.qrCodes.CheckOut(ctx, code, visit); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrQRNotInUse
		}
		return nil, fmt.Errorf("failed to check out: %w", err)
	}
	metrics.CheckIns.WithLabelValues(qr.ActionCheckOut.String()).Inc()

	s.log.Info("client checked out",
		zap.String("qr_code_id", code.ID.String()),
		zap.String("visit_id", visit.ID.String()),
		zap.Intp("duration_minutes", visit.DurationMinutes),
	)
	return visit, nil
}

// currentInstance picks the group's plan instance to charge the entry to.
func (s *service) currentInstance(ctx context.Context, code *models.QRCode, at time.Time) (*uuid.UUID, error) {
	groupID := code.ClientGroupID
	if groupID == nil && code.Client != nil {
		groupID = code.Client.GroupID
	}
	if groupID == nil {
		return nil, nil
	}

	instance, err := s.instances.CurrentForGroup(ctx, *groupID, at)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load plan instance: %w", err)
	}
	return &instance.ID, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.QRCode, error) {
	code, err := s.qrCodes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, appErrors.ErrQRNotFound
		}
		return nil, fmt.Errorf("failed to load qr code: %w", err)
	}
	return code, nil
}

func canView(actor *access.Actor, code *models.QRCode) bool {
	if actor.IsStaff() || actor.Is(code.ClientID) {
		return true
	}
	groupID := code.ClientGroupID
	if groupID == nil && code.Client != nil {
		groupID = code.Client.GroupID
	}
	return groupID != nil && (actor.MemberOf(*groupID) || actor.AdminOf(*groupID))
}
