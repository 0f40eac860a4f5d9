package handlers

import (
	"strconv"

	appErrors "playpark/internal/errors"
	"playpark/internal/logger"
	"playpark/internal/services/qrcode"
	"playpark/internal/utils"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QRHandler struct {
	qrService qrcode.Service
	log       *zap.Logger
}

func NewQRHandler(qrService qrcode.Service, log *zap.Logger) *QRHandler {
	return &QRHandler{
		qrService: qrService,
		log:       logger.OrNop(log),
	}
}

// Generate issues a new QR code for a client
func (h *QRHandler) Generate(c *fiber.Ctx) error {
	var req qrcode.GenerateRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	code, err := h.qrService.Generate(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, code)
}

// Get returns a QR code with its client and visit
func (h *QRHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "qr_code_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	code, err := h.qrService.Get(c.UserContext(), utils.GetActor(c), id)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, code)
}

// GetActive returns the client's current pending or in-use code
func (h *QRHandler) GetActive(c *fiber.Ctx) error {
	clientID, err := paramID(c, "client_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	code, err := h.qrService.GetActive(c.UserContext(), utils.GetActor(c), clientID)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, code)
}

// Image renders the code as a PNG. The optional size query sets the edge in pixels.
func (h *QRHandler) Image(c *fiber.Ctx) error {
	id, err := paramID(c, "qr_code_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	size := 0
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return response.FromError(c, h.log, appErrors.Unprocessable("size must be an integer"))
		}
	}

	png, err := h.qrService.Image(c.UserContext(), utils.GetActor(c), id, size)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *QRHandler) CheckIn(c *fiber.Ctx) error {
	id, err := paramID(c, "qr_code_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	visit, err := h.qrService.CheckIn(c.UserContext(), utils.GetActor(c), id)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, visit)
}

func (h *QRHandler) CheckOut(c *fiber.Ctx) error {
	id, err := paramID(c, "qr_code_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	visit, err := h.qrService.CheckOut(c.UserContext(), utils.GetActor(c), id)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, visit)
}
