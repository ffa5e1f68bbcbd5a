package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"ars/src/common"
	"ars/src/config"
	"ars/src/types"
)

// PaymentGateway initializes charges with the payment provider. The
// reservation workflow only talks to this interface so tests can swap in
// a stub.
type PaymentGateway interface {
	InitializeCharge(ctx context.Context, req *types.KorapayChargeRequest) (*types.KorapayChargeResponse, error)
}

type KorapayClient struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewKorapayClient() *KorapayClient {
	return &KorapayClient{
		BaseURL:    config.KorapayBaseURL(),
		SecretKey:  config.KorapaySecretKey(),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *KorapayClient) InitializeCharge(ctx context.Context, chargeReq *types.KorapayChargeRequest) (*types.KorapayChargeResponse, error) {
	body, err := json.Marshal(chargeReq)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/charges/initialize", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.SecretKey))

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Printf("Charge initialization request failed for %s: %s\n", chargeReq.Reference, err.Error())
		return nil, fmt.Errorf("initialize charge %s: %w", chargeReq.Reference, common.ErrGateway)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read charge response for %s: %w", chargeReq.Reference, common.ErrGateway)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Printf("Charge initialization for %s returned %d: %s\n", chargeReq.Reference, res.StatusCode, string(raw))
		return nil, fmt.Errorf("initialize charge %s: status %d: %w", chargeReq.Reference, res.StatusCode, common.ErrGateway)
	}

	var chargeRes types.KorapayChargeResponse
	if err := json.Unmarshal(raw, &chargeRes); err != nil {
		return nil, fmt.Errorf("decode charge response for %s: %w", chargeReq.Reference, common.ErrGateway)
	}
	if !chargeRes.Status {
		log.Printf("Charge initialization for %s rejected: %s\n", chargeReq.Reference, chargeRes.Message)
		return nil, fmt.Errorf("initialize charge %s: %s: %w", chargeReq.Reference, chargeRes.Message, common.ErrGateway)
	}
	return &chargeRes, nil
}
