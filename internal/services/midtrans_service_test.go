package services

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	svc := &MidtransService{ServerKey: "SB-Mid-server-abc123"}

	orderId := "CONTEST-a1b2c3d4-00112233"
	statusCode := "200"
	gross := "157500.00"

	sum := sha512.Sum512([]byte(orderId + statusCode + gross + "SB-Mid-server-abc123"))
	valid := hex.EncodeToString(sum[:])

	assert.True(t, svc.VerifySignature(orderId, statusCode, gross, valid))

	// Any field being off invalidates the signature.
	assert.False(t, svc.VerifySignature(orderId, statusCode, gross, "deadbeef"))
	assert.False(t, svc.VerifySignature(orderId, "201", gross, valid))
	assert.False(t, svc.VerifySignature(orderId, statusCode, "157500", valid))
	assert.False(t, svc.VerifySignature("CONTEST-other-00112233", statusCode, gross, valid))
}

func TestCreateTransactionRequiresServerKey(t *testing.T) {
	svc := &MidtransService{}

	_, err := svc.CreateTransaction(SnapRequest{OrderId: "CONTEST-a1b2c3d4-00112233"})
	assert.True(t, errors.Is(err, ErrGatewayNotConfigured))
}

func TestCreateTransactionSendsFinishCallback(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-123","redirect_url":"https://app.sandbox.midtrans.com/snap/v2/vtweb/tok-123"}`))
	}))
	defer srv.Close()

	svc := &MidtransService{
		ServerKey: "test-server-key",
		BaseUrl:   srv.URL,
		AppUrl:    "https://app.sandbox.midtrans.com",
		AppBase:   "https://clipaja.example",
	}

	result, err := svc.CreateTransaction(SnapRequest{
		OrderId:     "CONTEST-a1b2c3d4-00112233",
		ContestId:   "contest-42",
		GrossAmount: 157500,
		ItemName:    "Contest funding",
		CustomerId:  "owner-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)

	callbacks, ok := captured["callbacks"].(map[string]interface{})
	assert.True(t, ok, "payload must carry callbacks")
	assert.Equal(t, "https://clipaja.example/contests/contest-42", callbacks["finish"])
}

func TestCreateTransactionOmitsCallbackWithoutBaseURL(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-456"}`))
	}))
	defer srv.Close()

	svc := &MidtransService{
		ServerKey: "test-server-key",
		BaseUrl:   srv.URL,
		AppUrl:    "https://app.sandbox.midtrans.com",
	}

	result, err := svc.CreateTransaction(SnapRequest{
		OrderId:     "CONTEST-a1b2c3d4-00112234",
		ContestId:   "contest-42",
		GrossAmount: 157500,
	})
	assert.NoError(t, err)
	_, hasCallbacks := captured["callbacks"]
	assert.False(t, hasCallbacks)
	// Redirect falls back to the rebuilt payment url.
	assert.Equal(t, "https://app.sandbox.midtrans.com/snap/v2/vtweb/tok-456", result.RedirectUrl)
}

func TestPaymentURL(t *testing.T) {
	sandbox := &MidtransService{AppUrl: "https://app.sandbox.midtrans.com"}
	assert.Equal(t,
		"https://app.sandbox.midtrans.com/snap/v2/vtweb/tok-123",
		sandbox.PaymentURL("tok-123"))

	production := &MidtransService{AppUrl: "https://app.midtrans.com"}
	assert.Equal(t,
		"https://app.midtrans.com/snap/v2/vtweb/tok-123",
		production.PaymentURL("tok-123"))
}
