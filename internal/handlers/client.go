package handlers

import (
	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/services/client"
	"playpark/internal/utils"
	"playpark/internal/utils/pagination"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService client.Service
	log           *zap.Logger
}

func NewClientHandler(clientService client.Service, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		log:           logger.OrNop(log),
	}
}

// Register creates a client. Authentication is optional.
func (h *ClientHandler) Register(c *fiber.Ctx) error {
	var req client.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.clientService.Register(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

// RegisterChild registers a child of the caller.
func (h *ClientHandler) RegisterChild(c *fiber.Ctx) error {
	var req client.ChildRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.clientService.RegisterChild(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

func (h *ClientHandler) RegisterChildOfParent(c *fiber.Ctx) error {
	parentID, err := paramID(c, "parent_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	var req client.ChildRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.clientService.RegisterChildOfParent(c.UserContext(), utils.GetActor(c), parentID, req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

func (h *ClientHandler) RegisterInGroup(c *fiber.Ctx) error {
	groupID, err := paramID(c, "group_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	var req client.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.clientService.RegisterInGroup(c.UserContext(), utils.GetActor(c), groupID, req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

// List returns the clients of the group named by the group_id query.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	raw := c.Query("group_id")
	if raw == "" {
		return response.FromError(c, h.log, appErrors.ErrGroupIDRequired)
	}
	groupID, err := uuid.Parse(raw)
	if err != nil {
		return response.FromError(c, h.log, appErrors.ErrInvalidGroupID)
	}
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	isChild, err := pagination.OptionalBool(c, "is_child")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	clients, err := h.clientService.List(c.UserContext(), utils.GetActor(c), client.ListRequest{
		GroupID: groupID,
		IsChild: isChild,
		Skip:    page.Skip,
		Limit:   page.Limit,
	})
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, clients)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "client_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	found, err := h.clientService.Get(c.UserContext(), utils.GetActor(c), id)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, found)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "client_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	var req client.UpdateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	updated, err := h.clientService.Update(c.UserContext(), utils.GetActor(c), id, req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, updated)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "client_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.clientService.Delete(c.UserContext(), utils.GetActor(c), id); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Message(c, "Client successfully deleted")
}
