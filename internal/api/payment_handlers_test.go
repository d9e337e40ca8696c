package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/estanteapp/estante-api/internal/events"
	"github.com/estanteapp/estante-api/internal/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway satisfies Gateway with a canned result.
type fakeGateway struct {
	tx   *payment.Transaction
	raw  json.RawMessage
	err  error
	last *payment.Input
}

func (f *fakeGateway) CreateTransaction(_ context.Context, in payment.Input) (*payment.Transaction, json.RawMessage, error) {
	f.last = &in
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.tx, f.raw, nil
}

func validPayment() map[string]any {
	return map[string]any{
		"name":        "Maria Silva",
		"amount":      150.5,
		"document":    "123.456.789-00",
		"description": "Livro X",
	}
}

func TestCreatePaymentSuccess(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	token := env.token(t, userID)

	raw := json.RawMessage(`{"id":"tx_1","status":"waiting_payment","amount":15050,"netAmount":14900,"pix":{"qrcode":"00020126...","expirationDate":"2026-01-02T00:00:00Z"}}`)
	env.gw.tx = &payment.Transaction{
		ID:     "tx_1",
		Status: "waiting_payment",
		Amount: 15050,
	}
	env.gw.raw = raw

	var published []events.PaymentCreated
	env.handlers.Publish = func(ev events.PaymentCreated) { published = append(published, ev) }

	w := env.do(t, http.MethodPost, "/v1/payments", token, validPayment())
	require.Equal(t, http.StatusOK, w.Code)

	// the gateway body is relayed verbatim
	tx := decodeBody(t, w)["transaction"].(map[string]any)
	assert.Equal(t, "tx_1", tx["id"])
	assert.Equal(t, "00020126...", tx["pix"].(map[string]any)["qrcode"])

	// gateway saw the raw caller fields
	require.NotNil(t, env.gw.last)
	assert.Equal(t, "Maria Silva", env.gw.last.Name)
	assert.Equal(t, "123.456.789-00", env.gw.last.Document)
	assert.True(t, env.gw.last.Amount.Equal(decimal.NewFromFloat(150.5)))

	// one event, tied to the caller
	require.Len(t, published, 1)
	assert.Equal(t, "tx_1", published[0].TransactionID)
	assert.Equal(t, userID.String(), published[0].UserID)
	assert.Equal(t, int64(15050), published[0].Amount)
}

func TestCreatePaymentValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"missing name", func(p map[string]any) { delete(p, "name") }, "Nome é obrigatório"},
		{"zero amount", func(p map[string]any) { p["amount"] = 0 }, "Valor deve ser positivo"},
		{"negative amount", func(p map[string]any) { p["amount"] = -5 }, "Valor deve ser positivo"},
		{"short document", func(p map[string]any) { p["document"] = "123" }, "CPF inválido"},
		{"missing description", func(p map[string]any) { delete(p, "description") }, "Descrição é obrigatória"},
		{"bad email", func(p map[string]any) { p["email"] = "not-an-email" }, "Email inválido"},
		{"short phone", func(p map[string]any) { p["phone"] = "1234" }, "Telefone inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayment()
			tc.mutate(p)
			w := env.do(t, http.MethodPost, "/v1/payments", token, p)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, decodeBody(t, w)["error"])
			assert.Nil(t, env.gw.last, "gateway must not be called on validation failure")
		})
	}
}

func TestCreatePaymentMissingAPIKey(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())
	env.gw.err = payment.ErrNotConfigured

	w := env.do(t, http.MethodPost, "/v1/payments", token, validPayment())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Chave de API não configurada", decodeBody(t, w)["error"])
}

func TestCreatePaymentGatewayRejectionMirrored(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())
	env.gw.err = &payment.GatewayError{
		Status:  http.StatusUnprocessableEntity,
		Details: json.RawMessage(`{"message":"invalid document"}`),
	}

	w := env.do(t, http.MethodPost, "/v1/payments", token, validPayment())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Erro ao criar transação", body["error"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "invalid document", details["message"])
}

func TestCreatePaymentGatewayRejectionRawBody(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())
	env.gw.err = &payment.GatewayError{Status: http.StatusBadGateway, Raw: "upstream exploded"}

	w := env.do(t, http.MethodPost, "/v1/payments", token, validPayment())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	details := decodeBody(t, w)["details"].(map[string]any)
	assert.Equal(t, "upstream exploded", details["raw_error"])
}

func TestCreatePaymentInvalidSuccessBody(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())
	env.gw.err = &payment.GatewayError{Status: http.StatusOK, Raw: "<html>", InvalidBody: true}

	w := env.do(t, http.MethodPost, "/v1/payments", token, validPayment())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro ao criar transação", decodeBody(t, w)["error"])
}

func TestCreatePaymentNetworkError(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New())
	env.gw.err = fmt.Errorf("%w: connection refused", payment.ErrUnreachable)

	w := env.do(t, http.MethodPost, "/v1/payments", token, validPayment())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Erro ao processar pagamento", decodeBody(t, w)["error"])
}
