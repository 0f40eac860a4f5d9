package plan

import (
	"context"
	"testing"

	appErrors "playpark/internal/errors"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/repositories/mocks"
	"playpark/internal/services/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var staff = &access.Actor{Claims: &models.UserClaims{AdminUser: true}}

func TestPlanService_List_TagFilter(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantTag string
	}{
		{name: "no tag", tag: "", wantTag: ""},
		{name: "all disables filter", tag: "ALL", wantTag: ""},
		{name: "specific tag", tag: "weekend", wantTag: "weekend"},
		{name: "tag case preserved", tag: " Weekend ", wantTag: "Weekend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := new(mocks.PlanRepository)
			filter := repositories.PlanFilter{ActiveOnly: true, Tag: tt.wantTag}
			plans.On("List", mock.Anything, filter, 0, 100).Return([]models.Plan{{Name: "Basic"}}, nil)

			got, err := NewService(plans, nil).List(context.Background(), ListRequest{ActiveOnly: true, Tag: tt.tag, Limit: 100})
			require.NoError(t, err)
			assert.Len(t, got, 1)
			plans.AssertExpectations(t)
		})
	}
}

func TestPlanService_Get(t *testing.T) {
	id := uuid.New()
	plan := &models.Plan{ID: id, Slug: "family-pass"}

	t.Run("by id", func(t *testing.T) {
		plans := new(mocks.PlanRepository)
		plans.On("GetByID", mock.Anything, id, true).Return(plan, nil)

		got, err := NewService(plans, nil).Get(context.Background(), id.String(), true)
		require.NoError(t, err)
		assert.Equal(t, plan, got)
	})

	t.Run("by slug", func(t *testing.T) {
		plans := new(mocks.PlanRepository)
		plans.On("GetBySlug", mock.Anything, "family-pass", false).Return(plan, nil)

		got, err := NewService(plans, nil).Get(context.Background(), "Family-Pass", false)
		require.NoError(t, err)
		assert.Equal(t, plan, got)
	})

	t.Run("missing", func(t *testing.T) {
		plans := new(mocks.PlanRepository)
		plans.On("GetBySlug", mock.Anything, "nope", true).Return(nil, repositories.ErrNotFound)

		_, err := NewService(plans, nil).Get(context.Background(), "nope", true)
		assert.ErrorIs(t, err, appErrors.ErrPlanNotFound)
	})
}

func TestPlanService_Create(t *testing.T) {
	t.Run("slug collision gets a suffix", func(t *testing.T) {
		plans := new(mocks.PlanRepository)
		plans.On("SlugExists", mock.Anything, "weekend-pass", uuid.Nil).Return(true, nil)
		plans.On("SlugExists", mock.Anything, "weekend-pass-1", uuid.Nil).Return(false, nil)
		plans.On("Create", mock.Anything, mock.AnythingOfType("*models.Plan")).Return(nil)

		got, err := NewService(plans, nil).Create(context.Background(), staff, CreateRequest{
			Name:    "Weekend Pass",
			Price:   50000,
			Entries: 4,
			Addons:  map[string]float64{"socks": 5000},
			Tags:    []string{"weekend"},
		})
		require.NoError(t, err)
		assert.Equal(t, "weekend-pass-1", got.Slug)
		assert.True(t, got.IsActive)
		assert.Equal(t, 5000.0, got.Addons.Data()["socks"])
		assert.Equal(t, []string{"weekend"}, []string(got.Tags))
		plans.AssertExpectations(t)
	})

	t.Run("requested slug taken", func(t *testing.T) {
		plans := new(mocks.PlanRepository)
		plans.On("SlugExists", mock.Anything, "vip", uuid.Nil).Return(true, nil)

		_, err := NewService(plans, nil).Create(context.Background(), staff, CreateRequest{Name: "VIP", Slug: "VIP"})
		assert.ErrorIs(t, err, appErrors.ErrPlanSlugTaken)
	})

	t.Run("non staff", func(t *testing.T) {
		_, err := NewService(new(mocks.PlanRepository), nil).Create(context.Background(), &access.Actor{}, CreateRequest{Name: "VIP"})
		assert.ErrorIs(t, err, appErrors.ErrStaffRequired)
	})
}

func TestPlanService_Update(t *testing.T) {
	id := uuid.New()
	existing := &models.Plan{ID: id, Name: "Basic", Price: 100, Entries: 2, IsActive: true, Addons: models.NewAddons(nil)}

	plans := new(mocks.PlanRepository)
	plans.On("GetByID", mock.Anything, id, false).Return(existing, nil)
	plans.On("Update", mock.Anything, existing).Return(nil)

	price := 120.0
	got, err := NewService(plans, nil).Update(context.Background(), staff, id, UpdateRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, "Basic", got.Name)
	assert.Equal(t, 2, got.Entries)

	require.NoError(t, NewService(plans, nil).Deactivate(context.Background(), staff, id))
	assert.False(t, existing.IsActive)
}
