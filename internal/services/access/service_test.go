package access

import (
	"context"
	"errors"
	"testing"

	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/repositories/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	client := &models.Client{ID: uuid.New(), UserID: &userID, GroupID: &groupID}

	tests := []struct {
		name      string
		claims    *models.UserClaims
		setupMock func(*mocks.ClientRepository, *mocks.ClientGroupRepository)
		wantErr   bool
		check     func(*testing.T, *Actor)
	}{
		{
			name:   "anonymous",
			claims: nil,
			check: func(t *testing.T, a *Actor) {
				assert.False(t, a.Authenticated())
				assert.False(t, a.IsStaff())
			},
		},
		{
			name:   "user without profile",
			claims: &models.UserClaims{UserID: userID, AdminUser: true},
			setupMock: func(c *mocks.ClientRepository, g *mocks.ClientGroupRepository) {
				c.On("GetByUserID", mock.Anything, userID).Return(nil, repositories.ErrNotFound)
			},
			check: func(t *testing.T, a *Actor) {
				assert.Nil(t, a.Client)
				assert.True(t, a.IsStaff())
				assert.False(t, a.IsSuperuser())
			},
		},
		{
			name:   "client admin",
			claims: &models.UserClaims{UserID: userID},
			setupMock: func(c *mocks.ClientRepository, g *mocks.ClientGroupRepository) {
				c.On("GetByUserID", mock.Anything, userID).Return(client, nil)
				g.On("AdminGroupIDs", mock.Anything, client.ID).Return([]uuid.UUID{groupID}, nil)
			},
			check: func(t *testing.T, a *Actor) {
				assert.True(t, a.MemberOf(groupID))
				assert.True(t, a.AdminOf(groupID))
				assert.False(t, a.AdminOf(uuid.New()))
				assert.True(t, a.Is(client.ID))
			},
		},
		{
			name:   "lookup failure",
			claims: &models.UserClaims{UserID: userID},
			setupMock: func(c *mocks.ClientRepository, g *mocks.ClientGroupRepository) {
				c.On("GetByUserID", mock.Anything, userID).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := new(mocks.ClientRepository)
			groups := new(mocks.ClientGroupRepository)
			if tt.setupMock != nil {
				tt.setupMock(clients, groups)
			}

			actor, err := NewResolver(clients, groups).Resolve(context.Background(), tt.claims)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				tt.check(t, actor)
			}

			clients.AssertExpectations(t)
			groups.AssertExpectations(t)
		})
	}
}

func TestActor_RequireClient(t *testing.T) {
	notFound := errors.New("no profile")

	_, err := (&Actor{}).RequireClient(notFound)
	assert.Equal(t, notFound, err)

	c := &models.Client{ID: uuid.New()}
	got, err := (&Actor{Client: c}).RequireClient(notFound)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
