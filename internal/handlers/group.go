package handlers

import (
	"playpark/internal/logger"
	"playpark/internal/services/group"
	"playpark/internal/utils"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GroupHandler struct {
	groupService group.Service
	log          *zap.Logger
}

func NewGroupHandler(groupService group.Service, log *zap.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		log:          logger.OrNop(log),
	}
}

// Create founds a group administered by the caller.
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req group.CreateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.groupService.Create(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

func (h *GroupHandler) ListMine(c *fiber.Ctx) error {
	groups, err := h.groupService.ListMine(c.UserContext(), utils.GetActor(c))
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, groups)
}

func (h *GroupHandler) AddAdmin(c *fiber.Ctx) error {
	groupID, err := paramID(c, "group_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	var req group.AddAdminRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.groupService.AddAdmin(c.UserContext(), utils.GetActor(c), groupID, req); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Message(c, "Admin added successfully")
}
