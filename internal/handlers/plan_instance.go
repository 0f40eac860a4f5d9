package handlers

import (
	"playpark/internal/logger"
	"playpark/internal/services/planinstance"
	"playpark/internal/utils"
	"playpark/internal/utils/pagination"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PlanInstanceHandler struct {
	instanceService planinstance.Service
	log             *zap.Logger
}

func NewPlanInstanceHandler(instanceService planinstance.Service, log *zap.Logger) *PlanInstanceHandler {
	return &PlanInstanceHandler{
		instanceService: instanceService,
		log:             logger.OrNop(log),
	}
}

// Create buys a plan for a group and records its first payment.
func (h *PlanInstanceHandler) Create(c *fiber.Ctx) error {
	var req planinstance.CreateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.instanceService.Create(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

func (h *PlanInstanceHandler) List(c *fiber.Ctx) error {
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	activeOnly, err := pagination.Bool(c, "active_only", false)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	instances, err := h.instanceService.List(c.UserContext(), utils.GetActor(c), planinstance.ListRequest{
		ActiveOnly: activeOnly,
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, instances)
}

func (h *PlanInstanceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "instance_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	instance, err := h.instanceService.Get(c.UserContext(), utils.GetActor(c), id)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, instance)
}

func (h *PlanInstanceHandler) Visits(c *fiber.Ctx) error {
	id, err := paramID(c, "instance_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	visits, err := h.instanceService.Visits(c.UserContext(), utils.GetActor(c), id, page.Skip, page.Limit)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, visits)
}

func (h *PlanInstanceHandler) Payments(c *fiber.Ctx) error {
	id, err := paramID(c, "instance_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	payments, err := h.instanceService.Payments(c.UserContext(), utils.GetActor(c), id, page.Skip, page.Limit)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, payments)
}
