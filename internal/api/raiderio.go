package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"guild-tracker/internal/config"
	"guild-tracker/internal/fetch"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// RaiderIOClient talks to the guild-progress tracking API.
type RaiderIOClient struct {
	apiKey string
	region string
	client *fasthttp.Client
}

func NewRaiderIOClient(cfg *config.Config) *RaiderIOClient {
	return &RaiderIOClient{
		apiKey: cfg.RaiderIOAPIKey,
		region: cfg.BlizzardRegion,
		client: &fasthttp.Client{
			MaxConnsPerHost:     50,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *RaiderIOClient) GetCharacter(ctx context.Context, realm, name string) (*RaiderIOCharacterResponse, error) {
	params := url.Values{}
	params.Set("region", c.region)
	params.Set("realm", slugify(realm))
	params.Set("name", name)
	params.Set("fields", "mythic_plus_scores_by_season:current,raid_progression")
	if c.apiKey != "" {
		params.Set("access_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("https://raider.io/api/v1/characters/profile?%s", params.Encode())

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(reqURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := fetch.Do(ctx, c.client, req, resp, fetch.DefaultOptions()); err != nil {
		return nil, err
	}

	var result RaiderIOCharacterResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

type RaiderIOCharacterResponse struct {
	Name  string `json:"name"`
	Realm string `json:"realm"`
	Class string `json:"class"`

	MythicPlusScoresBySeason []struct {
		Season string `json:"season"`
		Scores struct {
			All float64 `json:"all"`
		} `json:"scores"`
	} `json:"mythic_plus_scores_by_season"`

	RaidProgression map[string]RaidProgression `json:"raid_progression"`
}

type RaidProgression struct {
	Summary            string `json:"summary"`
	TotalBosses        int    `json:"total_bosses"`
	NormalBossesKilled int    `json:"normal_bosses_killed"`
	HeroicBossesKilled int    `json:"heroic_bosses_killed"`
	MythicBossesKilled int    `json:"mythic_bosses_killed"`
}

// KeystoneScore returns the current-season score, zero when the character
// has none.
func (r *RaiderIOCharacterResponse) KeystoneScore() float64 {
	if len(r.MythicPlusScoresBySeason) == 0 {
		return 0
	}
	return r.MythicPlusScoresBySeason[0].Scores.All
}

// CurrentRaid returns the progression entry the character is furthest into,
// preferring mythic kills, then heroic, then normal.
func (r *RaiderIOCharacterResponse) CurrentRaid() (string, *RaidProgression) {
	var bestName string
	var best *RaidProgression
	for name, prog := range r.RaidProgression {
		p := prog
		if best == nil || rank(&p) > rank(best) {
			bestName = name
			best = &p
		}
	}
	return bestName, best
}

func rank(p *RaidProgression) int {
	return p.MythicBossesKilled*10000 + p.HeroicBossesKilled*100 + p.NormalBossesKilled
}
