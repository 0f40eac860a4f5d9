package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/metrics"
	"playpark/internal/models"
	"playpark/internal/repositories"
	"playpark/internal/services/access"
	"playpark/internal/validation"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

type service struct {
	clients repositories.ClientRepository
	groups  repositories.ClientGroupRepository
	log     *zap.Logger
}

func NewService(clients repositories.ClientRepository, groups repositories.ClientGroupRepository, log *zap.Logger) Service {
	return &service{
		clients: clients,
		groups:  groups,
		log:     logger.OrNop(log),
	}
}

func (s *service) Register(ctx context.Context, actor *access.Actor, req RegisterRequest) (*models.Client, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var client models.Client
	if err := copier.Copy(&client, &req); err != nil {
		return nil, fmt.Errorf("failed to map client: %w", err)
	}

	userID, err := s.resolveUserLink(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}
	client.UserID = userID

	// Joining a group grants visibility over its members, so only staff
	// and the group's admins may place a new client in one.
	if req.GroupID != nil {
		if _, err := s.loadGroup(ctx, *req.GroupID, appErrors.ErrGroupNotFound); err != nil {
			return nil, err
		}
		if !(actor.IsStaff() || actor.AdminOf(*req.GroupID)) {
			return nil, appErrors.ErrClientGroupAccessDenied
		}
	}
	if req.GuardianID != nil {
		guardian, err := s.loadClient(ctx, *req.GuardianID, appErrors.ErrGuardianNotFound)
		if err != nil {
			return nil, err
		}
		if !canManage(actor, guardian) {
			return nil, appErrors.ErrClientAccessDenied
		}
		if client.GroupID == nil {
			client.GroupID = guardian.GroupID
		}
	}

	return s.create(ctx, &client)
}

func (s *service) RegisterChild(ctx context.Context, actor *access.Actor, req ChildRequest) (*models.Client, error) {
	parent, err := actor.RequireClient(appErrors.ErrNoClientProfile)
	if err != nil {
		return nil, err
	}
	return s.registerChild(ctx, parent, req)
}

func (s *service) RegisterChildOfParent(ctx context.Context, actor *access.Actor, parentID uuid.UUID, req ChildRequest) (*models.Client, error) {
	parent, err := s.loadClient(ctx, parentID, appErrors.ErrParentNotFound)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, parent) {
		return nil, appErrors.ErrClientAccessDenied
	}
	return s.registerChild(ctx, parent, req)
}

func (s *service) registerChild(ctx context.Context, parent *models.Client, req ChildRequest) (*models.Client, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var child models.Client
	if err := copier.Copy(&child, &req); err != nil {
		return nil, fmt.Errorf("failed to map child: %w", err)
	}
	child.IsChild = true
	child.GuardianID = &parent.ID
	child.GroupID = parent.GroupID

	return s.create(ctx, &child)
}

func (s *service) RegisterInGroup(ctx context.Context, actor *access.Actor, groupID uuid.UUID, req RegisterRequest) (*models.Client, error) {
	if _, err := s.loadGroup(ctx, groupID, appErrors.ErrGroupNotFound); err != nil {
		return nil, err
	}
	if !(actor.IsStaff() || actor.AdminOf(groupID)) {
		return nil, appErrors.ErrClientGroupAccessDenied
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var client models.Client
	if err := copier.Copy(&client, &req); err != nil {
		return nil, fmt.Errorf("failed to map client: %w", err)
	}
	client.UserID = nil
	client.GroupID = &groupID
	if req.GuardianID != nil {
		if _, err := s.loadClient(ctx, *req.GuardianID, appErrors.ErrGuardianNotFound); err != nil {
			return nil, err
		}
	}

	return s.create(ctx, &client)
}

func (s *service) List(ctx context.Context, actor *access.Actor, req ListRequest) ([]models.Client, error) {
	if !(actor.IsStaff() || actor.MemberOf(req.GroupID) || actor.AdminOf(req.GroupID)) {
		return nil, appErrors.ErrClientGroupAccessDenied
	}
	filter := repositories.ClientFilter{GroupID: req.GroupID, IsChild: req.IsChild}
	clients, err := s.clients.List(ctx, filter, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *service) Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (*models.Client, error) {
	client, err := s.loadClient(ctx, id, appErrors.ErrClientNotFound)
	if err != nil {
		return nil, err
	}
	if !canView(actor, client) {
		return nil, appErrors.ErrClientAccessDenied
	}
	return client, nil
}

func (s *service) Update(ctx context.Context, actor *access.Actor, id uuid.UUID, req UpdateRequest) (*models.Client, error) {
	client, err := s.loadClient(ctx, id, appErrors.ErrClientNotFound)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, client) {
		return nil, appErrors.ErrClientAccessDenied
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if err := copier.CopyWithOption(client, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("failed to apply client update: %w", err)
	}

	if req.GroupID != nil && !client.InGroup(*req.GroupID) {
		if _, err := s.loadGroup(ctx, *req.GroupID, appErrors.ErrGroupNotFound); err != nil {
			return nil, err
		}
		if !(actor.IsStaff() || actor.AdminOf(*req.GroupID)) {
			return nil, appErrors.ErrClientGroupAccessDenied
		}
		client.GroupID = req.GroupID
	}

	if req.GuardianID != nil {
		if *req.GuardianID == client.ID {
			return nil, appErrors.BadRequest("A client cannot be its own guardian")
		}
		guardian, err := s.loadClient(ctx, *req.GuardianID, appErrors.ErrGuardianNotFound)
		if err != nil {
			return nil, err
		}
		client.GuardianID = &guardian.ID
		if guardian.GroupID != nil && !client.InGroup(*guardian.GroupID) {
			client.GroupID = guardian.GroupID
		}
	}

	client.UpdatedAt = time.Now().UTC()
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *service) Delete(ctx context.Context, actor *access.Actor, id uuid.UUID) error {
	client, err := s.loadClient(ctx, id, appErrors.ErrClientNotFound)
	if err != nil {
		return err
	}
	if !canManage(actor, client) {
		return appErrors.ErrClientAccessDenied
	}

	hasChildren, err := s.clients.HasChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check children: %w", err)
	}
	if hasChildren {
		return appErrors.ErrClientHasChildren
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return appErrors.ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.log.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}

func (s *service) create(ctx context.Context, client *models.Client) (*models.Client, error) {
	qr, err := s.clients.CreateWithQRCode(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	kind := "adult"
	if client.IsChild {
		kind = "child"
	}
	metrics.ClientsRegistered.WithLabelValues(kind).Inc()
	metrics.QRCodesIssued.Inc()

	s.log.Info("client registered",
		zap.String("client_id", client.ID.String()),
		zap.String("qr_code_id", qr.ID.String()),
		zap.Bool("is_child", client.IsChild),
	)
	return client, nil
}

// resolveUserLink decides which auth user the new profile belongs to.
func (s *service) resolveUserLink(ctx context.Context, actor *access.Actor, requested *uuid.UUID) (*uuid.UUID, error) {
	var userID *uuid.UUID
	switch {
	case requested != nil:
		if !actor.IsStaff() && !(actor.Authenticated() && actor.Claims.UserID == *requested) {
			return nil, appErrors.Forbidden("You can only link a profile to your own account")
		}
		userID = requested
	case actor.Authenticated() && actor.Client == nil:
		id := actor.Claims.UserID
		userID = &id
	default:
		return nil, nil
	}

	_, err := s.clients.GetByUserID(ctx, *userID)
	switch {
	case err == nil:
		return nil, appErrors.ErrClientAlreadyLinked
	case errors.Is(err, repositories.ErrNotFound):
		return userID, nil
	default:
		return nil, fmt.Errorf("failed to check user link: %w", err)
	}
}

func (s *service) loadClient(ctx context.Context, id uuid.UUID, notFound error) (*models.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	return client, nil
}

func (s *service) loadGroup(ctx context.Context, id uuid.UUID, notFound error) (*models.ClientGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return group, nil
}

func canView(actor *access.Actor, c *models.Client) bool {
	if canManage(actor, c) {
		return true
	}
	return c.GroupID != nil && actor.MemberOf(*c.GroupID)
}

// canManage covers staff, the client, its guardian and admins of its group.
func canManage(actor *access.Actor, c *models.Client) bool {
	switch {
	case actor.IsStaff():
		return true
	case actor.Is(c.ID):
		return true
	case c.GuardianID != nil && actor.Is(*c.GuardianID):
		return true
	case c.GroupID != nil && actor.AdminOf(*c.GroupID):
		return true
	}
	return false
}
