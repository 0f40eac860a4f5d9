// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"playpark/internal/models"
	"playpark/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ClientRepository struct {
	mock.Mock
}

var _ repositories.ClientRepository = (*ClientRepository)(nil)

func (m *ClientRepository) CreateWithQRCode(ctx context.Context, client *models.Client) (*models.QRCode, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func (m *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *ClientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *ClientRepository) List(ctx context.Context, filter repositories.ClientFilter, offset, limit int) ([]models.Client, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *ClientRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type ClientGroupRepository struct {
	mock.Mock
}

var _ repositories.ClientGroupRepository = (*ClientGroupRepository)(nil)

func (m *ClientGroupRepository) Create(ctx context.Context, group *models.ClientGroup, founder *models.Client) error {
	return m.Called(ctx, group, founder).Error(0)
}

func (m *ClientGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClientGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientGroup), args.Error(1)
}

func (m *ClientGroupRepository) AdminGroupIDs(ctx context.Context, clientID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *ClientGroupRepository) ListForClient(ctx context.Context, client *models.Client) ([]models.ClientGroup, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClientGroup), args.Error(1)
}

func (m *ClientGroupRepository) AddAdmin(ctx context.Context, groupID, clientID uuid.UUID) error {
	return m.Called(ctx, groupID, clientID).Error(0)
}

type QRCodeRepository struct {
	mock.Mock
}

var _ repositories.QRCodeRepository = (*QRCodeRepository)(nil)

func (m *QRCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	return m.Called(ctx, qr).Error(0)
}

func (m *QRCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QRCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func (m *QRCodeRepository) LatestActiveForClient(ctx context.Context, clientID uuid.UUID) (*models.QRCode, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func (m *QRCodeRepository) CheckIn(ctx context.Context, qr *models.QRCode, visit *models.Visit, instanceID *uuid.UUID) error {
	return m.Called(ctx, qr, visit, instanceID).Error(0)
}

func (m *QRCodeRepository) CheckOut(ctx context.Context, qr *models.QRCode, visit *models.Visit) error {
	return m.Called(ctx, qr, visit).Error(0)
}

type VisitRepository struct {
	mock.Mock
}

var _ repositories.VisitRepository = (*VisitRepository)(nil)

func (m *VisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *VisitRepository) LatestForClient(ctx context.Context, clientID uuid.UUID) (*models.Visit, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *VisitRepository) ListByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool, offset, limit int) ([]models.Visit, error) {
	args := m.Called(ctx, clientID, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Visit), args.Error(1)
}

func (m *VisitRepository) ListByPlanInstance(ctx context.Context, instanceID uuid.UUID, offset, limit int) ([]models.Visit, error) {
	args := m.Called(ctx, instanceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Visit), args.Error(1)
}

func (m *VisitRepository) ListOpen(ctx context.Context, offset, limit int) ([]models.Visit, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Visit), args.Error(1)
}

func (m *VisitRepository) AttachPayment(ctx context.Context, visit *models.Visit, payment *models.Payment) error {
	return m.Called(ctx, visit, payment).Error(0)
}

type PlanRepository struct {
	mock.Mock
}

var _ repositories.PlanRepository = (*PlanRepository)(nil)

func (m *PlanRepository) List(ctx context.Context, filter repositories.PlanFilter, offset, limit int) ([]models.Plan, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

func (m *PlanRepository) GetByID(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Plan, error) {
	args := m.Called(ctx, id, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *PlanRepository) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Plan, error) {
	args := m.Called(ctx, slug, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *PlanRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *PlanRepository) Update(ctx context.Context, plan *models.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

type PlanInstanceRepository struct {
	mock.Mock
}

var _ repositories.PlanInstanceRepository = (*PlanInstanceRepository)(nil)

func (m *PlanInstanceRepository) CreateWithPayment(ctx context.Context, instance *models.PlanInstance, payment *models.Payment) error {
	return m.Called(ctx, instance, payment).Error(0)
}

func (m *PlanInstanceRepository) ListForGroups(ctx context.Context, groupIDs []uuid.UUID, activeOnly bool, offset, limit int) ([]models.PlanInstance, error) {
	args := m.Called(ctx, groupIDs, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlanInstance), args.Error(1)
}

func (m *PlanInstanceRepository) GetForGroups(ctx context.Context, id uuid.UUID, groupIDs []uuid.UUID) (*models.PlanInstance, error) {
	args := m.Called(ctx, id, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlanInstance), args.Error(1)
}

func (m *PlanInstanceRepository) CurrentForGroup(ctx context.Context, groupID uuid.UUID, at time.Time) (*models.PlanInstance, error) {
	args := m.Called(ctx, groupID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlanInstance), args.Error(1)
}

func (m *PlanInstanceRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

var _ repositories.PaymentRepository = (*PaymentRepository)(nil)

func (m *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentRepository) ListByPlanInstance(ctx context.Context, instanceID uuid.UUID, offset, limit int) ([]models.Payment, error) {
	args := m.Called(ctx, instanceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *PaymentRepository) Complete(ctx context.Context, payment *models.Payment, details models.JSON) (bool, error) {
	args := m.Called(ctx, payment, details)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepository) Fail(ctx context.Context, payment *models.Payment, details models.JSON) (bool, error) {
	args := m.Called(ctx, payment, details)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
