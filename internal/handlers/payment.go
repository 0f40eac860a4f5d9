package handlers

import (
	"net/url"

	"playpark/internal/logger"
	"playpark/internal/services/payment"
	"playpark/internal/services/payment/gateway"
	"playpark/internal/utils"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const stripeSignatureHeader = "Stripe-Signature"

type PaymentHandler struct {
	paymentService payment.Service
	log            *zap.Logger
}

func NewPaymentHandler(paymentService payment.Service, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            logger.OrNop(log),
	}
}

// MakePayment records an installment against a plan instance.
func (h *PaymentHandler) MakePayment(c *fiber.Ctx) error {
	var req payment.MakePaymentRequest
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}

	result, err := h.paymentService.MakePayment(c.UserContext(), utils.GetActor(c), req)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.OK(c, result)
}

// VisitPayment settles a finished visit in cash. The visit is named by visit_id.
func (h *PaymentHandler) VisitPayment(c *fiber.Ctx) error {
	var req struct {
		payment.VisitPaymentRequest
		VisitID string `json:"visit_id"`
	}
	if err := parseBody(c, &req); err != nil {
		return response.FromError(c, h.log, err)
	}
	visitID, err := parseUUID(req.VisitID, "visit_id")
	if err != nil {
		return response.FromError(c, h.log, err)
	}

	paid, err := h.paymentService.VisitPayment(c.UserContext(), utils.GetActor(c), visitID, req.VisitPaymentRequest)
	if err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Created(c, paid)
}

// Confirmation receives gateway callbacks. ePayco posts form fields, Stripe
// posts a signed JSON event.
func (h *PaymentHandler) Confirmation(c *fiber.Ctx) error {
	params := url.Values{}
	collect := func(key, value []byte) {
		params.Add(string(key), string(value))
	}
	c.Context().QueryArgs().VisitAll(collect)
	c.Request().PostArgs().VisitAll(collect)

	n := gateway.Notification{
		Body:      append([]byte(nil), c.Body()...),
		Params:    params,
		Signature: c.Get(stripeSignatureHeader),
	}
	if err := h.paymentService.Confirm(c.UserContext(), n); err != nil {
		return response.FromError(c, h.log, err)
	}
	return response.Message(c, "ok")
}
