package api

import (
	"context"
	"fmt"
	"time"

	"guild-tracker/internal/config"
	"guild-tracker/internal/fetch"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// WowAuditClient talks to the guild-spreadsheet tracking API. It only reads
// the roster dump used for auto-import.
type WowAuditClient struct {
	apiKey string
	client *fasthttp.Client
}

func NewWowAuditClient(cfg *config.Config) *WowAuditClient {
	return &WowAuditClient{
		apiKey: cfg.WowAuditAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *WowAuditClient) GetRoster(ctx context.Context) ([]WowAuditCharacter, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("https://wowaudit.com/v1/characters")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", c.apiKey)

	if err := fetch.Do(ctx, c.client, req, resp, fetch.DefaultOptions()); err != nil {
		return nil, err
	}

	var result []WowAuditCharacter
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}
	return result, nil
}

type WowAuditCharacter struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Realm string `json:"realm"`
	Class string `json:"class"`
	Role  string `json:"role"`
	Rank  string `json:"rank"`
	Note  string `json:"note"`
}
