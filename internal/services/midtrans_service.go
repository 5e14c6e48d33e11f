package services

import (
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"clipaja/pkg/common"
)

// ErrGatewayNotConfigured distinguishes a missing server key from transient
// gateway failures; callers map it to a configuration error, not a 502.
var ErrGatewayNotConfigured = errors.New("midtrans server key not configured")

// SnapGateway creates hosted checkout sessions and verifies webhook
// signatures. MidtransService is the production implementation; tests swap in
// a stub.
type SnapGateway interface {
	CreateTransaction(req SnapRequest) (*SnapResult, error)
	VerifySignature(orderId, statusCode, grossAmount, signatureKey string) bool
	PaymentURL(token string) string
}

type SnapRequest struct {
	OrderId     string
	ContestId   string
	GrossAmount float64
	ItemName    string
	CustomerId  string
}

type SnapResult struct {
	Token       string
	RedirectUrl string
}

type MidtransService struct {
	ServerKey string
	BaseUrl   string
	AppUrl    string
	AppBase   string
}

// NewMidtransService selects sandbox or production keys based on APP_ENV.
func NewMidtransService() *MidtransService {
	appBase := strings.TrimSuffix(os.Getenv("APP_BASE_URL"), "/")
	if os.Getenv("APP_ENV") == "production" {
		return &MidtransService{
			ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
			BaseUrl:   "https://app.midtrans.com",
			AppUrl:    "https://app.midtrans.com",
			AppBase:   appBase,
		}
	}
	return &MidtransService{
		ServerKey: os.Getenv("MIDTRANS_SANDBOX_SERVER_KEY"),
		BaseUrl:   "https://app.sandbox.midtrans.com",
		AppUrl:    "https://app.sandbox.midtrans.com",
		AppBase:   appBase,
	}
}

func (s *MidtransService) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(s.ServerKey+":"))
}

// CreateTransaction calls the Snap API and returns the checkout token and
// redirect url. Gross amounts are whole rupiah, sent as integers.
func (s *MidtransService) CreateTransaction(req SnapRequest) (*SnapResult, error) {
	if s.ServerKey == "" {
		return nil, ErrGatewayNotConfigured
	}

	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     req.OrderId,
			"gross_amount": int64(req.GrossAmount),
		},
		"item_details": []map[string]interface{}{
			{
				"id":       req.OrderId,
				"price":    int64(req.GrossAmount),
				"quantity": 1,
				"name":     req.ItemName,
			},
		},
		"customer_details": map[string]interface{}{
			"first_name": req.CustomerId,
		},
	}

	// Send the payer back to the contest page after checkout.
	if s.AppBase != "" && req.ContestId != "" {
		payload["callbacks"] = map[string]interface{}{
			"finish": fmt.Sprintf("%s/contests/%s", s.AppBase, req.ContestId),
		}
	}

	headers := map[string]string{
		"Authorization": s.authHeader(),
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}

	resp, err := common.Post(fmt.Sprintf("%s/snap/v1/transactions", s.BaseUrl), payload, headers)
	if err != nil {
		return nil, fmt.Errorf("snap request failed: %w", err)
	}

	respMap, ok := resp.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid snap response: %v", resp)
	}

	token, _ := respMap["token"].(string)
	if token == "" {
		if msgs, ok := respMap["error_messages"].([]interface{}); ok && len(msgs) > 0 {
			return nil, fmt.Errorf("snap rejected transaction: %v", msgs[0])
		}
		return nil, fmt.Errorf("snap response missing token")
	}

	redirect, _ := respMap["redirect_url"].(string)
	if redirect == "" {
		redirect = s.PaymentURL(token)
	}

	return &SnapResult{Token: token, RedirectUrl: redirect}, nil
}

// VerifySignature checks the webhook signature:
// sha512(order_id + status_code + gross_amount + server_key).
func (s *MidtransService) VerifySignature(orderId, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + s.ServerKey))
	return hex.EncodeToString(sum[:]) == signatureKey
}

// PaymentURL rebuilds the hosted checkout url for a stored snap token so a
// pending transaction can be resumed without a new gateway call.
func (s *MidtransService) PaymentURL(token string) string {
	return fmt.Sprintf("%s/snap/v2/vtweb/%s", s.AppUrl, token)
}
