package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/estanteapp/estante-api/internal/auth"
	"github.com/estanteapp/estante-api/internal/events"
	"github.com/estanteapp/estante-api/internal/payment"
	"github.com/estanteapp/estante-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreatePayment godoc
// @Summary      Create a PIX transaction
// @Description  Forwards a payment request to the PIX gateway and relays the transaction.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body      PaymentRequest  true  "Payment payload"
// @Success      200      {object}  map[string]any
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /payments [post]
func (h *Handlers) CreatePayment(c *gin.Context) {
	caller, ok := auth.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.IncPaymentsFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncPaymentsFailed("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": firstViolation(err, paymentMessages)})
		return
	}

	tx, raw, err := h.Gateway.CreateTransaction(c.Request.Context(), payment.Input{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Amount:      decimal.NewFromFloat(req.Amount),
		Document:    req.Document,
		Description: req.Description,
	})
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	telemetry.IncPaymentsCreated()
	if h.Publish != nil {
		h.Publish(events.PaymentCreated{
			TransactionID: tx.ID,
			UserID:        caller.String(),
			Amount:        tx.Amount,
			Status:        tx.Status,
			CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"transaction": raw})
}

// respondPaymentError converts the payment error taxonomy into the HTTP
// surface: config and invalid-body faults are the server's (500), a
// structured gateway rejection mirrors the upstream status, and a
// transport failure with no response is a generic processing error.
func (h *Handlers) respondPaymentError(c *gin.Context, err error) {
	var gwErr *payment.GatewayError
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		telemetry.IncPaymentsFailed("config")
		h.Log.Error("payment gateway not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chave de API não configurada"})
	case errors.As(err, &gwErr):
		telemetry.IncPaymentsFailed("gateway")
		if gwErr.InvalidBody {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Erro ao criar transação",
				"details": gin.H{"raw_error": gwErr.Raw},
			})
			return
		}
		var details any
		if gwErr.Details != nil {
			details = gwErr.Details
		} else {
			details = gin.H{"raw_error": gwErr.Raw}
		}
		c.JSON(gwErr.Status, gin.H{"error": "Erro ao criar transação", "details": details})
	case errors.Is(err, payment.ErrUnreachable):
		telemetry.IncPaymentsFailed("network")
		h.Log.Error("payment gateway unreachable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar pagamento"})
	default:
		telemetry.IncPaymentsFailed("network")
		h.Log.Error("payment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar pagamento"})
	}
}
