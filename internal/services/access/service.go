// Package access resolves the authenticated caller into an Actor and answers
// the permission questions shared by the other services.
package access

import (
	"context"
	"errors"
	"fmt"

	"playpark/internal/models"
	"playpark/internal/repositories"

	"github.com/google/uuid"
)

// Actor is the caller of a request.
type Actor struct {
	Claims      *models.UserClaims
	Client      *models.Client
	AdminGroups []uuid.UUID
}

func (a *Actor) Authenticated() bool {
	return a != nil && a.Claims != nil
}

func (a *Actor) IsSuperuser() bool {
	return a.Authenticated() && a.Claims.IsSuperuser
}

// IsStaff covers operators and superusers.
func (a *Actor) IsStaff() bool {
	return a.Authenticated() && a.Claims.IsStaff()
}

// MemberOf reports whether the caller's client belongs to groupID.
func (a *Actor) MemberOf(groupID uuid.UUID) bool {
	return a != nil && a.Client != nil && a.Client.InGroup(groupID)
}

// AdminOf reports whether the caller's client administers groupID.
func (a *Actor) AdminOf(groupID uuid.UUID) bool {
	if a == nil {
		return false
	}
	for _, id := range a.AdminGroups {
		if id == groupID {
			return true
		}
	}
	return false
}

// Is reports whether the caller's client is clientID.
func (a *Actor) Is(clientID uuid.UUID) bool {
	return a != nil && a.Client != nil && a.Client.ID == clientID
}

// RequireClient returns the caller's client profile or notFound.
func (a *Actor) RequireClient(notFound error) (*models.Client, error) {
	if a == nil || a.Client == nil {
		return nil, notFound
	}
	return a.Client, nil
}

type Resolver interface {
	// Resolve loads the client profile and admin groups behind claims.
	// Nil claims yield an anonymous actor.
	Resolve(ctx context.Context, claims *models.UserClaims) (*Actor, error)
}

type resolver struct {
	clients repositories.ClientRepository
	groups  repositories.ClientGroupRepository
}

func NewResolver(clients repositories.ClientRepository, groups repositories.ClientGroupRepository) Resolver {
	return &resolver{
		clients: clients,
		groups:  groups,
	}
}

func (r *resolver) Resolve(ctx context.Context, claims *models.UserClaims) (*Actor, error) {
	actor := &Actor{Claims: claims}
	if claims == nil {
		return actor, nil
	}

	client, err := r.clients.GetByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return actor, nil
		}
		return nil, fmt.Errorf("failed to load client for user: %w", err)
	}
	actor.Client = client

	groups, err := r.groups.AdminGroupIDs(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin groups: %w", err)
	}
	actor.AdminGroups = groups
	return actor, nil
}
