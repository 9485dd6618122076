package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/internal/config"
)

func TestCreateOrder(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotBody CreateGatewayOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_ABC123",
			"amount":   92000,
			"currency": "INR",
			"receipt":  "OD-7K2M9QAZ",
			"status":   "created",
		})
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{
		BaseApiURL: srv.URL,
		KeyID:      "rzp_test_key",
		KeySecret:  "rzp_test_secret",
	})

	resp, err := c.CreateOrder(context.Background(), &CreateGatewayOrderRequest{
		Amount:   92000,
		Currency: "INR",
		Receipt:  "OD-7K2M9QAZ",
		Notes:    map[string]string{"userId": "user-1"},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if gotPath != "/v1/orders" {
		t.Errorf("path = %q, want /v1/orders", gotPath)
	}
	if gotUser != "rzp_test_key" || gotPass != "rzp_test_secret" {
		t.Errorf("basic auth = %q/%q, want key id and secret", gotUser, gotPass)
	}
	if gotBody.Amount != 92000 || gotBody.Currency != "INR" || gotBody.Receipt != "OD-7K2M9QAZ" {
		t.Errorf("request body = %+v", gotBody)
	}
	if gotBody.Notes["userId"] != "user-1" {
		t.Errorf("notes = %v, want userId note", gotBody.Notes)
	}

	if resp.OrderID != "order_ABC123" || resp.Amount != 92000 || resp.Status != "created" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	c := NewRazorpayClient(&config.Razorpay{
		BaseApiURL: srv.URL,
		KeyID:      "bad",
		KeySecret:  "creds",
	})

	_, err := c.CreateOrder(context.Background(), &CreateGatewayOrderRequest{
		Amount:   100,
		Currency: "INR",
		Receipt:  "OD-XXXXXXXX",
	})
	if err == nil {
		t.Fatal("expected error on 401 response")
	}
}
