package handlers

import (
	"playpark/internal/logger"
	"playpark/internal/services/visit"
	"playpark/internal/utils"
	"playpark/internal/utils/pagination"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VisitHandler struct {
	visitService visit.Service
	log          *zap.Logger
}

func NewVisitHandler(visitService visit.Service, log *zap.Logger) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		log:          logger.OrNop(log),
	}
}

func (h *VisitHandler) ListMine(c *fiber.Ctx) error {
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	activeOnly, err := pagination.Bool(c, "active_only", false)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	visits, err := h.visitService.ListMine(c.UserContext(), utils.GetActor(c), visit.ListRequest{
		ActiveOnly: activeOnly,
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, visits)
}

// ListOpen lists everyone currently inside the park.
func (h *VisitHandler) ListOpen(c *fiber.Ctx) error {
	page, err := pagination.ParseFromRequest(c)
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	visits, err := h.visitService.ListOpen(c.UserContext(), utils.GetActor(c), page.Skip, page.Limit)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, visits)
}
