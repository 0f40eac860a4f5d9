package gateway

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"playpark/internal/config"

	"github.com/google/uuid"
)

// ePayco x_cod_response values.
const (
	epaycoAccepted = "1"
	epaycoRejected = "2"
	epaycoPending  = "3"
	epaycoFailed   = "4"
)

type Epayco struct {
	cfg config.PaymentsConfig
}

func NewEpayco(cfg config.PaymentsConfig) *Epayco {
	return &Epayco{cfg: cfg}
}

func (e *Epayco) Name() string {
	return ProviderEpayco
}

// PaymentURL builds a signed standard checkout link.
func (e *Epayco) PaymentURL(_ context.Context, req CheckoutRequest) (string, error) {
	if req.PaymentID == uuid.Nil {
		return "", fmt.Errorf("payment id is required")
	}
	if req.Amount <= 0 {
		return "", fmt.Errorf("amount must be greater than zero")
	}

	invoice := req.PaymentID.String()
	amount := formatAmount(req.Amount)
	currency := strings.ToUpper(e.cfg.Currency)

	params := url.Values{}
	params.Add("p_cust_id_cliente", e.cfg.EpaycoCustomerID)
	params.Add("p_key", e.cfg.EpaycoPublicKey)
	params.Add("p_id_invoice", invoice)
	params.Add("p_description", req.Description)
	params.Add("p_amount", amount)
	params.Add("p_tax", "0")
	params.Add("p_amount_base", "0")
	params.Add("p_currency_code", currency)
	params.Add("p_test_request", strconv.FormatBool(e.cfg.EpaycoTest))
	params.Add("p_url_response", req.RedirectURL)
	params.Add("p_url_confirmation", e.cfg.ConfirmationURL)
	params.Add("p_billing_name", req.ClientName)
	params.Add("p_billing_email", req.ClientEmail)
	params.Add("p_extra1", invoice)
	params.Add("p_signature", e.sign(invoice, amount, currency))

	return e.cfg.EpaycoCheckoutURL + "?" + params.Encode(), nil
}

// ParseConfirmation verifies x_signature and maps x_cod_response.
func (e *Epayco) ParseConfirmation(_ context.Context, n Notification) (*Confirmation, error) {
	if e.cfg.EpaycoPKey == "" {
		return nil, fmt.Errorf("%w: private key not configured", ErrInvalidSignature)
	}

	p := n.Params
	ref := p.Get("x_ref_payco")
	txn := p.Get("x_transaction_id")
	amount := p.Get("x_amount")
	currency := p.Get("x_currency_code")
	if ref == "" || txn == "" || amount == "" {
		return nil, ErrMalformed
	}

	expected := e.sign(ref, txn, amount, currency)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(p.Get("x_signature")))) != 1 {
		return nil, ErrInvalidSignature
	}

	invoice := p.Get("x_id_invoice")
	if invoice == "" {
		invoice = p.Get("x_extra1")
	}
	paymentID, err := uuid.Parse(invoice)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice %q", ErrMalformed, invoice)
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrMalformed, amount)
	}

	var outcome string
	switch p.Get("x_cod_response") {
	case epaycoAccepted:
		outcome = OutcomeApproved
	case epaycoRejected, epaycoFailed:
		outcome = OutcomeRejected
	case epaycoPending:
		outcome = OutcomePending
	default:
		return nil, fmt.Errorf("%w: response code %q", ErrMalformed, p.Get("x_cod_response"))
	}

	return &Confirmation{
		PaymentID: paymentID,
		Outcome:   outcome,
		Reference: ref,
		Amount:    value,
		Details: map[string]interface{}{
			"provider":       ProviderEpayco,
			"ref_payco":      ref,
			"transaction_id": txn,
			"response":       p.Get("x_response"),
			"reason":         p.Get("x_response_reason_text"),
		},
	}, nil
}

// sign hashes customer id, private key and parts joined by '^'.
func (e *Epayco) sign(parts ...string) string {
	fields := append([]string{e.cfg.EpaycoCustomerID, e.cfg.EpaycoPKey}, parts...)
	sum := sha256.Sum256([]byte(strings.Join(fields, "^")))
	return hex.EncodeToString(sum[:])
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
