package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://apiv2.payevo.com.br/functions/v1/transactions"

// pixExpirationDays is the fixed QR-code validity window sent upstream.
const pixExpirationDays = 1

var (
	// ErrNotConfigured means the gateway API key is absent from the
	// environment. Surfaced as a server fault, never a gateway error.
	ErrNotConfigured = errors.New("PAYMENT_API_KEY não configurada")

	// ErrUnreachable wraps transport failures where no HTTP response was
	// obtained at all.
	ErrUnreachable = errors.New("gateway de pagamento inacessível")
)

// GatewayError is an upstream failure with an HTTP response attached:
// either a non-2xx status, or a 2xx whose body does not match the
// expected transaction shape.
type GatewayError struct {
	Status      int
	Details     json.RawMessage // structured error body, when parseable
	Raw         string          // raw body text, when not
	InvalidBody bool            // 2xx with an unusable body
}

func (e *GatewayError) Error() string {
	if e.InvalidBody {
		return fmt.Sprintf("gateway returned %d with an invalid body", e.Status)
	}
	return fmt.Sprintf("gateway returned %d", e.Status)
}

// Client is the PIX gateway client. One blocking request per payment
// submission, no retries.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	log        *zap.Logger
	now        func() time.Time
}

func NewClientFromEnv(log *zap.Logger) *Client {
	endpoint := os.Getenv("PAYMENT_API_URL")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		httpClient: http.DefaultClient,
		endpoint:   endpoint,
		apiKey:     os.Getenv("PAYMENT_API_KEY"),
		log:        log,
		now:        time.Now,
	}
}

// NewClient is the fully-injected constructor used by tests.
func NewClient(hc *http.Client, endpoint, apiKey string, log *zap.Logger) *Client {
	return &Client{
		httpClient: hc,
		endpoint:   endpoint,
		apiKey:     apiKey,
		log:        log,
		now:        time.Now,
	}
}

// CreateTransaction reshapes the input into the gateway's wire format,
// posts it once and relays the parsed transaction. The raw response body
// is kept on the returned Transaction for verbatim relay.
func (c *Client) CreateTransaction(ctx context.Context, in Input) (*Transaction, json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, nil, ErrNotConfigured
	}

	amount := ToMinorUnits(in.Amount)
	document := NormalizeDigits(in.Document)
	req := gatewayRequest{
		Amount:        amount,
		PaymentMethod: "pix",
		ExternalRef:   "estante-" + strconv.FormatInt(c.now().UnixMilli(), 10),
		Description:   in.Description,
		Customer: gatewayCustomer{
			Name:  in.Name,
			Email: in.Email,
			Phone: NormalizeDigits(in.Phone),
			Document: gatewayDocument{
				Number: document,
				Type:   ClassifyDocument(document),
			},
		},
		Pix: gatewayPix{ExpiresInDays: pixExpirationDays},
		Items: []gatewayItem{{
			Title:     ItemTitle(in.Description),
			Quantity:  1,
			UnitPrice: amount,
			Tangible:  false,
		}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	httpReq.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.apiKey)))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &GatewayError{Status: resp.StatusCode}
		if json.Valid(respBody) && len(respBody) > 0 {
			gwErr.Details = json.RawMessage(respBody)
		} else {
			gwErr.Raw = string(respBody)
		}
		c.log.Warn("gateway rejected transaction",
			zap.Int("status", resp.StatusCode),
			zap.Int64("amount", amount),
		)
		return nil, nil, gwErr
	}

	var tx Transaction
	if err := json.Unmarshal(respBody, &tx); err != nil {
		c.log.Error("gateway success with unparseable body",
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, nil, &GatewayError{Status: resp.StatusCode, Raw: string(respBody), InvalidBody: true}
	}

	return &tx, json.RawMessage(respBody), nil
}
