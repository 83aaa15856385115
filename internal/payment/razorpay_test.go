// internal/payment/razorpay_test.go
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_Deterministic(t *testing.T) {
	client := NewClient("rzp_test_key", "test_secret", "", nil)

	first := client.Signature("order_abc", "pay_xyz")
	second := client.Signature("order_abc", "pay_xyz")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex sha256
}

func TestVerifySignature(t *testing.T) {
	client := NewClient("rzp_test_key", "test_secret", "", nil)
	valid := client.Signature("order_abc", "pay_xyz")

	assert.True(t, client.VerifySignature("order_abc", "pay_xyz", valid))

	// Tampered signature, payment id, and wrong secret all fail.
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", valid[:63]+"0"))
	assert.False(t, client.VerifySignature("order_abc", "pay_other", valid))

	other := NewClient("rzp_test_key", "other_secret", "", nil)
	assert.False(t, other.VerifySignature("order_abc", "pay_xyz", valid))
}

func TestCreateOrder(t *testing.T) {
	var gotReq createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "test_secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Amount:   gotReq.Amount,
			Currency: gotReq.Currency,
			Receipt:  gotReq.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "test_secret", server.URL, server.Client())
	order, err := client.CreateOrder(context.Background(), 32398, "INR", "order_123_abc", map[string]string{"company_name": "GADA ELECTRONICS"})

	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(32398), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, int64(32398), gotReq.Amount)
	assert.Equal(t, "GADA ELECTRONICS", gotReq.Notes["company_name"])
}

func TestCreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	client := NewClient("rzp_test_key", "test_secret", "", nil)

	_, err := client.CreateOrder(context.Background(), 0, "INR", "r", nil)
	assert.Error(t, err)

	_, err = client.CreateOrder(context.Background(), -100, "INR", "r", nil)
	assert.Error(t, err)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "test_secret", server.URL, server.Client())
	_, err := client.CreateOrder(context.Background(), 100, "INR", "r", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount exceeds maximum")
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/pay_xyz", r.URL.Path)
		json.NewEncoder(w).Encode(PaymentRecord{
			ID:      "pay_xyz",
			OrderID: "order_abc",
			Amount:  32398,
			Status:  StatusCaptured,
			Method:  "upi",
		})
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "test_secret", server.URL, server.Client())
	record, err := client.GetPayment(context.Background(), "pay_xyz")

	require.NoError(t, err)
	assert.Equal(t, StatusCaptured, record.Status)
	assert.Equal(t, "order_abc", record.OrderID)
}

func TestGetPayment_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force connection failures

	client := NewClient("rzp_test_key", "test_secret", server.URL, nil)
	_, err := client.GetPayment(context.Background(), "pay_xyz")
	assert.Error(t, err)
}
