package group

import (
	"context"
	"errors"
	"fmt"

	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"
	"playpark/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	groups  repositories.ClientGroupRepository
	clients repositories.ClientRepository
	log     *zap.Logger
}

func NewService(groups repositories.ClientGroupRepository, clients repositories.ClientRepository, log *zap.Logger) Service {
	return &service{
		groups:  groups,
		clients: clients,
		log:     logger.OrNop(log),
	}
}

// Create makes the caller the founding member and admin of a new group.
func (s *service) Create(ctx context.Context, actor *access.Actor, req CreateRequest) (*models.ClientGroup, error) {
	founder, err := actor.RequireClient(appErrors.ErrClientForCurrentUser)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	group := &models.ClientGroup{Name: req.Name}
	if err := s.groups.Create(ctx, group, founder); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.log.Info("client group created",
		zap.String("group_id", group.ID.String()),
		zap.String("founder_id", founder.ID.String()),
	)
	return group, nil
}

func (s *service) ListMine(ctx context.Context, actor *access.Actor) ([]models.ClientGroup, error) {
	client, err := actor.RequireClient(appErrors.ErrClientForCurrentUser)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.ListForClient(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *service) AddAdmin(ctx context.Context, actor *access.Actor, groupID uuid.UUID, req AddAdminRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return appErrors.ErrClientGroupNotFound
		}
		return fmt.Errorf("failed to load group: %w", err)
	}
	if !(actor.IsSuperuser() || actor.AdminOf(groupID)) {
		return appErrors.ErrGroupAdminRequired
	}

	target, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return appErrors.ErrClientNotFound
		}
		return fmt.Errorf("failed to load client: %w", err)
	}
	if !target.InGroup(groupID) {
		return appErrors.ErrNotGroupMember
	}

	if err := s.groups.AddAdmin(ctx, groupID, target.ID); err != nil {
		return fmt.Errorf("failed to add group admin: %w", err)
	}
	return nil
}
