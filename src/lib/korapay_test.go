package lib

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ars/src/common"
	"ars/src/types"

	"github.com/stretchr/testify/assert"
)

func TestInitializeCharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/charges/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var req types.KorapayChargeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "NGN", req.Currency)

		json.NewEncoder(w).Encode(types.KorapayChargeResponse{
			Status:  true,
			Message: "success",
			Data: types.KorapayChargeResponseData{
				Reference:   req.Reference,
				CheckoutURL: "https://checkout.korapay.test/" + req.Reference,
			},
		})
	}))
	defer server.Close()

	client := &KorapayClient{BaseURL: server.URL, SecretKey: "sk_test_secret", HTTPClient: server.Client()}
	res, err := client.InitializeCharge(context.Background(), &types.KorapayChargeRequest{
		Amount:    1500,
		Currency:  "NGN",
		Reference: "PAY-1-ABCDEF01",
	})
	assert.NoError(t, err)
	assert.Equal(t, "PAY-1-ABCDEF01", res.Data.Reference)
	assert.Equal(t, "https://checkout.korapay.test/PAY-1-ABCDEF01", res.Data.CheckoutURL)
}

func TestInitializeChargeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.KorapayChargeResponse{Status: false, Message: "invalid secret key"})
	}))
	defer server.Close()

	client := &KorapayClient{BaseURL: server.URL, SecretKey: "bad", HTTPClient: server.Client()}
	_, err := client.InitializeCharge(context.Background(), &types.KorapayChargeRequest{Reference: "PAY-2-ABCDEF02"})
	assert.ErrorIs(t, err, common.ErrGateway)
}

func TestInitializeChargeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := &KorapayClient{BaseURL: server.URL, SecretKey: "sk", HTTPClient: server.Client()}
	_, err := client.InitializeCharge(context.Background(), &types.KorapayChargeRequest{Reference: "PAY-3-ABCDEF03"})
	assert.ErrorIs(t, err, common.ErrGateway)
}
