package handlers

import (
	"playpark/internal/logger"
	"playpark/internal/services/plan"
	"playpark/internal/utils"
	"playpark/internal/utils/pagination"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlanHandler serves the public catalog and its staff administration.
type PlanHandler struct {
	planService plan.Service
	log         *zap.Logger
}

func NewPlanHandler(planService plan.Service, log *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		log:         logger.OrNop(log),
	}
}

func (h *PlanHandler) List(c *fiber.Ctx) error {
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	activeOnly, err := pagination.Bool(c, "active_only", true)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	plans, err := h.planService.List(c.UserContext(), plan.ListRequest{
		ActiveOnly: activeOnly,
		Tag:        c.Query("tag"),
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, plans)
}

// Get accepts a plan id or slug.
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	activeOnly, err := pagination.Bool(c, "active_only", true)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	found, err := h.planService.Get(c.UserContext(), c.Params("plan_id"), activeOnly)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, found)
}

func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var req plan.CreateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	created, err := h.planService.Create(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, created)
}

func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "plan_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	var req plan.UpdateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	updated, err := h.planService.Update(c.UserContext(), utils.GetActor(c), id, req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, updated)
}

func (h *PlanHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "plan_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	if err := h.planService.Deactivate(c.UserContext(), utils.GetActor(c), id); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Message(c, "Plan deactivated")
}
