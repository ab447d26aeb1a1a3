package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaystackVerifier verifies transactions against the Paystack API.
type PaystackVerifier struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewPaystackVerifier(baseURL, secretKey string) *PaystackVerifier {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackVerifier{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type paystackVerifyResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"` // success, failed, abandoned
		Amount   int64  `json:"amount"` // already in kobo
		Currency string `json:"currency"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
		Metadata struct {
			ApplicationID uint `json:"application_id"`
			MemberID      uint `json:"member_id"`
		} `json:"metadata"`
	} `json:"data"`
}

func (p *PaystackVerifier) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", p.BaseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack verify: %d %s", resp.StatusCode, string(body))
	}
	var out paystackVerifyResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &VerifyResult{
		Success:        out.Status && out.Data.Status == "success",
		ProviderStatus: out.Data.Status,
		AmountCents:    out.Data.Amount,
		Currency:       out.Data.Currency,
		CustomerEmail:  out.Data.Customer.Email,
		ApplicationID:  out.Data.Metadata.ApplicationID,
		MemberID:       out.Data.Metadata.MemberID,
	}, nil
}
