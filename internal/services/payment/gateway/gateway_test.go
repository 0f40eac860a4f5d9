package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"playpark/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
)

func testConfig() config.PaymentsConfig {
	return config.PaymentsConfig{
		Provider:            ProviderEpayco,
		Currency:            "cop",
		ConfirmationURL:     "https://api.example.com/api/payments/confirmation",
		EpaycoCustomerID:    "12345",
		EpaycoPublicKey:     "pub_test",
		EpaycoPKey:          "p_key_secret",
		EpaycoCheckoutURL:   "https://checkout.epayco.co/payment.html",
		EpaycoTest:          true,
		StripeSecretKey:     "sk_test_123",
		StripeWebhookSecret: "whsec_test",
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig()

	gw, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderEpayco, gw.Name())

	cfg.Provider = ProviderStripe
	gw, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderStripe, gw.Name())

	cfg.Provider = "paypal"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestEpayco_PaymentURL(t *testing.T) {
	gw := NewEpayco(testConfig())
	id := uuid.New()

	link, err := gw.PaymentURL(context.Background(), CheckoutRequest{
		PaymentID:   id,
		Amount:      75000,
		Description: "Payment for Family Pass (Down Payment)",
		ClientName:  "Ana Perez",
		ClientEmail: "ana@example.com",
		RedirectURL: "/client/plan-instances/abc",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://checkout.epayco.co/payment.html?"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, id.String(), q.Get("p_id_invoice"))
	assert.Equal(t, "75000.00", q.Get("p_amount"))
	assert.Equal(t, "COP", q.Get("p_currency_code"))
	assert.Equal(t, "Payment for Family Pass (Down Payment)", q.Get("p_description"))
	assert.Equal(t, "true", q.Get("p_test_request"))
	assert.NotContains(t, link, "p_key_secret")

	sum := sha256.Sum256([]byte("12345^p_key_secret^" + id.String() + "^75000.00^COP"))
	assert.Equal(t, hex.EncodeToString(sum[:]), q.Get("p_signature"))
}

func TestEpayco_PaymentURL_Invalid(t *testing.T) {
	gw := NewEpayco(testConfig())

	_, err := gw.PaymentURL(context.Background(), CheckoutRequest{Amount: 10})
	assert.Error(t, err)

	_, err = gw.PaymentURL(context.Background(), CheckoutRequest{PaymentID: uuid.New()})
	assert.Error(t, err)
}

func epaycoParams(id uuid.UUID, code string) url.Values {
	p := url.Values{}
	p.Set("x_ref_payco", "998877")
	p.Set("x_transaction_id", "TX-1")
	p.Set("x_amount", "75000.00")
	p.Set("x_currency_code", "COP")
	p.Set("x_id_invoice", id.String())
	p.Set("x_cod_response", code)
	p.Set("x_response", "Aceptada")
	sum := sha256.Sum256([]byte("12345^p_key_secret^998877^TX-1^75000.00^COP"))
	p.Set("x_signature", hex.EncodeToString(sum[:]))
	return p
}

func TestEpayco_ParseConfirmation(t *testing.T) {
	gw := NewEpayco(testConfig())
	id := uuid.New()

	tests := []struct {
		name    string
		params  func() url.Values
		want    string
		wantErr error
	}{
		{
			name:   "accepted",
			params: func() url.Values { return epaycoParams(id, "1") },
			want:   OutcomeApproved,
		},
		{
			name:   "rejected",
			params: func() url.Values { return epaycoParams(id, "2") },
			want:   OutcomeRejected,
		},
		{
			name:   "pending",
			params: func() url.Values { return epaycoParams(id, "3") },
			want:   OutcomePending,
		},
		{
			name: "tampered amount",
			params: func() url.Values {
				p := epaycoParams(id, "1")
				p.Set("x_amount", "1.00")
				return p
			},
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "missing fields",
			params:  func() url.Values { return url.Values{} },
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gw.ParseConfirmation(context.Background(), Notification{Params: tt.params()})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, got.PaymentID)
			assert.Equal(t, tt.want, got.Outcome)
			assert.Equal(t, 75000.0, got.Amount)
			assert.Equal(t, "998877", got.Reference)
		})
	}
}

func TestParseConfirmation_RequiresSecret(t *testing.T) {
	id := uuid.New()

	noKey := testConfig()
	noKey.EpaycoPKey = ""
	// Signed with the public customer id and an empty private key.
	p := epaycoParams(id, "1")
	sum := sha256.Sum256([]byte("12345^^998877^TX-1^75000.00^COP"))
	p.Set("x_signature", hex.EncodeToString(sum[:]))

	_, err := NewEpayco(noKey).ParseConfirmation(context.Background(), Notification{Params: p})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	noSecret := testConfig()
	noSecret.StripeWebhookSecret = ""
	payload := stripeEvent("checkout.session.completed", id.String(), "paid")

	_, err = NewStripe(noSecret).ParseConfirmation(context.Background(), Notification{
		Body:      payload,
		Signature: signStripe(payload, ""),
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func signStripe(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func stripeEvent(eventType, ref, paymentStatus string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_1",
  "object": "event",
  "api_version": %q,
  "type": %q,
  "data": {"object": {
    "id": "cs_test_1",
    "object": "checkout.session",
    "client_reference_id": %q,
    "amount_total": 7500000,
    "payment_status": %q
  }}
}`, stripe.APIVersion, eventType, ref, paymentStatus))
}

func TestStripe_ParseConfirmation(t *testing.T) {
	gw := NewStripe(testConfig())
	id := uuid.New()

	t.Run("completed session", func(t *testing.T) {
		body := stripeEvent("checkout.session.completed", id.String(), "paid")
		got, err := gw.ParseConfirmation(context.Background(), Notification{Body: body, Signature: signStripe(body, "whsec_test")})
		require.NoError(t, err)
		assert.Equal(t, id, got.PaymentID)
		assert.Equal(t, OutcomeApproved, got.Outcome)
		assert.Equal(t, 75000.0, got.Amount)
		assert.Equal(t, "cs_test_1", got.Reference)
	})

	t.Run("completed but unpaid stays pending", func(t *testing.T) {
		body := stripeEvent("checkout.session.completed", id.String(), "unpaid")
		got, err := gw.ParseConfirmation(context.Background(), Notification{Body: body, Signature: signStripe(body, "whsec_test")})
		require.NoError(t, err)
		assert.Equal(t, OutcomePending, got.Outcome)
	})

	t.Run("wrong secret", func(t *testing.T) {
		body := stripeEvent("checkout.session.completed", id.String(), "paid")
		_, err := gw.ParseConfirmation(context.Background(), Notification{Body: body, Signature: signStripe(body, "whsec_other")})
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("unrelated event", func(t *testing.T) {
		body := stripeEvent("customer.created", id.String(), "paid")
		_, err := gw.ParseConfirmation(context.Background(), Notification{Body: body, Signature: signStripe(body, "whsec_test")})
		assert.ErrorIs(t, err, ErrIgnored)
	})
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), minorUnits(19.99))
	assert.Equal(t, int64(7500000), minorUnits(75000))
}
