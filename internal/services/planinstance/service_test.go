package planinstance

import (
	"context"
	"testing"
	"time"

	appErrors "playpark/internal/errors"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/repositories/mocks"
	"playpark/internal/services/access"
	"playpark/internal/services/payment/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheckout struct {
	mock.Mock
}

func (m *mockCheckout) PaymentURL(ctx context.Context, req gateway.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func familyPlan() *models.Plan {
	return &models.Plan{
		ID:      uuid.New(),
		Name:    "Family Pass",
		Price:   100000,
		Entries: 8,
		Addons:  models.NewAddons(map[string]float64{"socks": 5000, "locker": 2000}),
		Limits:  models.NewLimits(map[string]int{"guests": 2}),
	}
}

func TestTotalCost(t *testing.T) {
	plan := familyPlan()

	assert.Equal(t, 100000.0, TotalCost(plan, nil))
	assert.Equal(t, 114000.0, TotalCost(plan, map[string]int{"socks": 2, "locker": 2}))
	assert.Equal(t, 105000.0, TotalCost(plan, map[string]int{"socks": 1, "cake": 3}))
}

func TestResolvePaymentAmount(t *testing.T) {
	tests := []struct {
		name        string
		paymentType string
		requested   float64
		want        float64
	}{
		{name: "full ignores request", paymentType: models.PaymentTypeFull, requested: 10, want: 1000},
		{name: "partial within range", paymentType: models.PaymentTypePartial, requested: 300, want: 300},
		{name: "partial at lower bound", paymentType: models.PaymentTypePartial, requested: 100, want: 100},
		{name: "partial at upper bound", paymentType: models.PaymentTypePartial, requested: 900, want: 900},
		{name: "partial below 10%", paymentType: models.PaymentTypePartial, requested: 99, want: 500},
		{name: "partial above 90%", paymentType: models.PaymentTypePartial, requested: 950, want: 500},
		{name: "partial without amount", paymentType: models.PaymentTypePartial, requested: 0, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePaymentAmount(tt.paymentType, tt.requested, 1000))
		})
	}
}

func TestInitiallyActive(t *testing.T) {
	assert.False(t, InitiallyActive(models.PaymentMethodCreditCard, models.PaymentTypeFull))
	assert.True(t, InitiallyActive(models.PaymentMethodCash, models.PaymentTypeFull))
	assert.False(t, InitiallyActive(models.PaymentMethodInvoice, models.PaymentTypePartial))
}

func TestPlanInstanceService_Create(t *testing.T) {
	groupID := uuid.New()
	admin := &access.Actor{
		Client:      &models.Client{ID: uuid.New(), FullName: "Ana", Email: "ana@example.com", GroupID: &groupID},
		AdminGroups: []uuid.UUID{groupID},
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("credit card partial payment", func(t *testing.T) {
		plan := familyPlan()
		plans := new(mocks.PlanRepository)
		instances := new(mocks.PlanInstanceRepository)
		checkout := new(mockCheckout)

		plans.On("GetByID", mock.Anything, plan.ID, false).Return(plan, nil)
		var stored *models.Payment
		instances.On("CreateWithPayment", mock.Anything, mock.AnythingOfType("*models.PlanInstance"), mock.AnythingOfType("*models.Payment")).
			Run(func(args mock.Arguments) { stored = args.Get(2).(*models.Payment) }).
			Return(nil)
		checkout.On("PaymentURL", mock.Anything, mock.MatchedBy(func(r gateway.CheckoutRequest) bool {
			return r.Description == "Payment for Family Pass (Down Payment)" &&
				r.Amount == 55000 &&
				r.ClientEmail == "ana@example.com" &&
				r.RedirectURL != ""
		})).Return("https://checkout.example/pay", nil)

		svc := NewService(Dependencies{Plans: plans, Instances: instances, Checkout: checkout})
		got, err := svc.Create(context.Background(), admin, CreateRequest{
			ClientGroupID:   groupID,
			PlanID:          plan.ID,
			StartDate:       start,
			EndDate:         start.AddDate(0, 1, 0),
			PurchasedAddons: map[string]int{"socks": 2},
			PaymentType:     models.PaymentTypePartial,
			PaymentAmount:   1000,
			PaymentNotes:    "first installment",
		})
		require.NoError(t, err)

		assert.Equal(t, 110000.0, got.TotalCost)
		assert.Equal(t, 8, got.RemainingEntries)
		assert.Equal(t, 2, got.RemainingLimits.Data()["guests"])
		assert.False(t, got.IsActive)
		assert.Equal(t, "https://checkout.example/pay", got.PaymentURL)

		require.NotNil(t, stored)
		assert.Equal(t, 55000.0, stored.Amount)
		assert.Equal(t, models.PaymentStatusPending, stored.Status)
		assert.Equal(t, models.PaymentMethodCreditCard, stored.PaymentMethod)
		assert.Equal(t, "first installment", stored.Details["notes"])
		assert.NotEmpty(t, stored.TransactionID)

		plans.AssertExpectations(t)
		instances.AssertExpectations(t)
		checkout.AssertExpectations(t)
	})

	t.Run("cash full payment is active without checkout", func(t *testing.T) {
		plan := familyPlan()
		plans := new(mocks.PlanRepository)
		instances := new(mocks.PlanInstanceRepository)
		checkout := new(mockCheckout)

		plans.On("GetByID", mock.Anything, plan.ID, false).Return(plan, nil)
		instances.On("CreateWithPayment", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		svc := NewService(Dependencies{Plans: plans, Instances: instances, Checkout: checkout})
		got, err := svc.Create(context.Background(), admin, CreateRequest{
			ClientGroupID:    groupID,
			PlanID:           plan.ID,
			StartDate:        start,
			EndDate:          start.AddDate(0, 1, 0),
			RemainingEntries: 3,
			PaymentMethod:    models.PaymentMethodCash,
		})
		require.NoError(t, err)
		assert.True(t, got.IsActive)
		assert.Equal(t, 3, got.RemainingEntries)
		assert.Empty(t, got.PaymentURL)
		checkout.AssertNotCalled(t, "PaymentURL", mock.Anything, mock.Anything)
	})

	t.Run("caller does not admin the group", func(t *testing.T) {
		member := &access.Actor{Client: &models.Client{ID: uuid.New(), GroupID: &groupID}}
		svc := NewService(Dependencies{})

		_, err := svc.Create(context.Background(), member, CreateRequest{
			ClientGroupID: groupID,
			PlanID:        uuid.New(),
			StartDate:     start,
			EndDate:       start.AddDate(0, 1, 0),
		})
		assert.ErrorIs(t, err, appErrors.ErrPlanInstanceForbidden)
	})

	t.Run("end before start", func(t *testing.T) {
		svc := NewService(Dependencies{})
		_, err := svc.Create(context.Background(), admin, CreateRequest{
			ClientGroupID: groupID,
			PlanID:        uuid.New(),
			StartDate:     start,
			EndDate:       start.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, appErrors.ErrInvalidPlanDates)
	})

	t.Run("unknown plan", func(t *testing.T) {
		plans := new(mocks.PlanRepository)
		planID := uuid.New()
		plans.On("GetByID", mock.Anything, planID, false).Return(nil, repositories.ErrNotFound)

		svc := NewService(Dependencies{Plans: plans})
		_, err := svc.Create(context.Background(), admin, CreateRequest{
			ClientGroupID: groupID,
			PlanID:        planID,
			StartDate:     start,
			EndDate:       start.AddDate(0, 1, 0),
		})
		assert.ErrorIs(t, err, appErrors.ErrPlanNotFound)
	})

	t.Run("no client profile", func(t *testing.T) {
		_, err := NewService(Dependencies{}).Create(context.Background(), &access.Actor{}, CreateRequest{})
		assert.ErrorIs(t, err, appErrors.ErrClientForCurrentUser)
	})
}

func TestPlanInstanceService_Create_NegativeAddonQuantity(t *testing.T) {
	groupID := uuid.New()
	admin := &access.Actor{
		Client:      &models.Client{ID: uuid.New(), GroupID: &groupID},
		AdminGroups: []uuid.UUID{groupID},
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	plans := new(mocks.PlanRepository)
	instances := new(mocks.PlanInstanceRepository)

	svc := NewService(Dependencies{Plans: plans, Instances: instances, Checkout: new(mockCheckout)})
	_, err := svc.Create(context.Background(), admin, CreateRequest{
		ClientGroupID:   groupID,
		PlanID:          uuid.New(),
		StartDate:       start,
		EndDate:         start.AddDate(0, 1, 0),
		PurchasedAddons: map[string]int{"socks": -3},
	})

	de, ok := appErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 422, de.Status)
	assert.Contains(t, de.Message, "purchased_addons[socks] must be at least 0")
	plans.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	instances.AssertNotCalled(t, "CreateWithPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanInstanceService_ScopedReads(t *testing.T) {
	groupID := uuid.New()
	admin := &access.Actor{Client: &models.Client{ID: uuid.New()}, AdminGroups: []uuid.UUID{groupID}}
	id := uuid.New()

	instances := new(mocks.PlanInstanceRepository)
	visits := new(mocks.VisitRepository)
	payments := new(mocks.PaymentRepository)
	svc := NewService(Dependencies{Instances: instances, Visits: visits, Payments: payments})

	instances.On("GetForGroups", mock.Anything, id, admin.AdminGroups).Return(&models.PlanInstance{ID: id, ClientGroupID: groupID}, nil)
	visits.On("ListByPlanInstance", mock.Anything, id, 0, 100).Return([]models.Visit{{ID: uuid.New()}}, nil)
	payments.On("ListByPlanInstance", mock.Anything, id, 0, 100).Return([]models.Payment{{ID: uuid.New()}}, nil)

	v, err := svc.Visits(context.Background(), admin, id, 0, 100)
	require.NoError(t, err)
	assert.Len(t, v, 1)

	p, err := svc.Payments(context.Background(), admin, id, 0, 100)
	require.NoError(t, err)
	assert.Len(t, p, 1)

	other := uuid.New()
	instances.On("GetForGroups", mock.Anything, other, admin.AdminGroups).Return(nil, repositories.ErrNotFound)
	_, err = svc.Get(context.Background(), admin, other)
	assert.ErrorIs(t, err, appErrors.ErrPlanInstanceNotFound)
}
