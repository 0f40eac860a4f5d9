package visit

import (
	"context"
	"testing"

	appErrors "playpark/internal/errors"
	"playpark/internal/models"
	"playpark/internal/repositories/mocks"
	"playpark/internal/services/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitService_ListMine(t *testing.T) {
	visits := new(mocks.VisitRepository)
	svc := NewService(visits)

	_, err := svc.ListMine(context.Background(), &access.Actor{}, ListRequest{Limit: 100})
	assert.ErrorIs(t, err, appErrors.ErrClientForCurrentUser)

	client := &models.Client{ID: uuid.New()}
	want := []models.Visit{{ID: uuid.New(), ClientID: client.ID}}
	visits.On("ListByClient", context.Background(), client.ID, true, 0, 100).Return(want, nil)

	got, err := svc.ListMine(context.Background(), &access.Actor{Client: client}, ListRequest{ActiveOnly: true, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	visits.AssertExpectations(t)
}

func TestVisitService_ListOpen(t *testing.T) {
	visits := new(mocks.VisitRepository)
	svc := NewService(visits)

	_, err := svc.ListOpen(context.Background(), &access.Actor{Client: &models.Client{ID: uuid.New()}}, 0, 100)
	assert.ErrorIs(t, err, appErrors.ErrStaffRequired)

	visits.On("ListOpen", context.Background(), 0, 50).Return([]models.Visit{}, nil)
	got, err := svc.ListOpen(context.Background(), &access.Actor{Claims: &models.UserClaims{IsSuperuser: true}}, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}
