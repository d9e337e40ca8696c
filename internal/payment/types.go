package payment

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Input carries the already-validated payment fields, still in the
// caller's shape (decimal amount, unnormalized document/phone).
type Input struct {
	Name        string
	Email       string
	Phone       string
	Amount      decimal.Decimal
	Document    string
	Description string
}

// gateway request wire shape

type gatewayDocument struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type gatewayCustomer struct {
	Name     string          `json:"name"`
	Email    string          `json:"email,omitempty"`
	Phone    string          `json:"phone,omitempty"`
	Document gatewayDocument `json:"document"`
}

type gatewayPix struct {
	ExpiresInDays int `json:"expiresInDays"`
}

type gatewayItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Tangible  bool   `json:"tangible"`
}

type gatewayRequest struct {
	Amount        int64           `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	ExternalRef   string          `json:"externalRef"`
	Description   string          `json:"description"`
	Customer      gatewayCustomer `json:"customer"`
	Pix           gatewayPix      `json:"pix"`
	Items         []gatewayItem   `json:"items"`
}

// Transaction is the gateway's response, relayed verbatim to the caller.
type Transaction struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Amount    int64           `json:"amount"`
	NetAmount int64           `json:"netAmount"`
	Pix       TransactionPix  `json:"pix"`
	Customer  json.RawMessage `json:"customer,omitempty"`
}

type TransactionPix struct {
	QRCode         string `json:"qrcode"`
	ExpirationDate string `json:"expirationDate"`
}
