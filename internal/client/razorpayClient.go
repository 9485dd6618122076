package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-api/internal/config"
)

type RazorpayClient interface {
	CreateOrder(ctx context.Context, req *CreateGatewayOrderRequest) (*CreateGatewayOrderResponse, error)
}

type razorpayClientImpl struct {
	httpClient        *http.Client
	baseApiURL        string
	razorpayKeyID     string
	razorpayKeySecret string
}

// CreateGatewayOrderRequest mirrors the Razorpay Orders API payload; Amount
// is in the smallest currency subunit (paise for INR).
type CreateGatewayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type CreateGatewayOrderResponse struct {
	OrderID  string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

type razorpayOrderResult struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func NewRazorpayClient(razorpayCfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:        razorpayCfg.BaseApiURL,
		razorpayKeyID:     razorpayCfg.KeyID,
		razorpayKeySecret: razorpayCfg.KeySecret,
	}
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, orderReq *CreateGatewayOrderRequest) (*CreateGatewayOrderResponse, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.SetBasicAuth(c.razorpayKeyID, c.razorpayKeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay error %d: %s", resp.StatusCode, string(b))
	}

	var result razorpayOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode razorpay response: %w", err)
	}

	return &CreateGatewayOrderResponse{
		OrderID:  result.ID,
		Amount:   result.Amount,
		Currency: result.Currency,
		Receipt:  result.Receipt,
		Status:   result.Status,
	}, nil
}
