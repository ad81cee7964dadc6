package api

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"guild-tracker/internal/config"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/fetch"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// BlizzardClient talks to the game publisher's profile API. Requests are
// admission-limited to the upstream rate ceiling; callers beyond the ceiling
// queue rather than fail.
type BlizzardClient struct {
	clientID     string
	clientSecret string
	region       string
	client       *fasthttp.Client

	limiter *rate.Limiter
	itemSem *semaphore.Weighted

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewBlizzardClient(cfg *config.Config) *BlizzardClient {
	return &BlizzardClient{
		clientID:     cfg.BlizzardClientID,
		clientSecret: cfg.BlizzardClientSecret,
		region:       cfg.BlizzardRegion,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Limit(constants.PublisherRequestsPerSecond), constants.PublisherRequestsPerSecond),
		itemSem: semaphore.NewWeighted(constants.ItemScrapeConcurrency),
	}
}

func (c *BlizzardClient) GetCharacterProfile(ctx context.Context, realm, name string) (*CharacterProfileResponse, error) {
	u := fmt.Sprintf("https://%s.api.blizzard.com/profile/wow/character/%s/%s?namespace=profile-%s&locale=en_US",
		c.region, realmSlug(realm), nameSlug(name), c.region)
	return doBlizzardRequest[CharacterProfileResponse](ctx, c, u)
}

func (c *BlizzardClient) GetCharacterEquipment(ctx context.Context, realm, name string) (*CharacterEquipmentResponse, error) {
	u := fmt.Sprintf("https://%s.api.blizzard.com/profile/wow/character/%s/%s/equipment?namespace=profile-%s&locale=en_US",
		c.region, realmSlug(realm), nameSlug(name), c.region)
	return doBlizzardRequest[CharacterEquipmentResponse](ctx, c, u)
}

func (c *BlizzardClient) GetCharacterMounts(ctx context.Context, realm, name string) (*CharacterMountsResponse, error) {
	u := fmt.Sprintf("https://%s.api.blizzard.com/profile/wow/character/%s/%s/collections/mounts?namespace=profile-%s&locale=en_US",
		c.region, realmSlug(realm), nameSlug(name), c.region)
	return doBlizzardRequest[CharacterMountsResponse](ctx, c, u)
}

func (c *BlizzardClient) GetCharacterEncounters(ctx context.Context, realm, name string) (*CharacterEncountersResponse, error) {
	u := fmt.Sprintf("https://%s.api.blizzard.com/profile/wow/character/%s/%s/encounters/raids?namespace=profile-%s&locale=en_US",
		c.region, realmSlug(realm), nameSlug(name), c.region)
	return doBlizzardRequest[CharacterEncountersResponse](ctx, c, u)
}

// GetItem is used by the item detail scraper and carries its own in-flight
// ceiling on top of the shared rate limit.
func (c *BlizzardClient) GetItem(ctx context.Context, itemID int) (*ItemResponse, error) {
	if err := c.itemSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.itemSem.Release(1)

	u := fmt.Sprintf("https://%s.api.blizzard.com/data/wow/item/%d?namespace=static-%s&locale=en_US",
		c.region, itemID, c.region)
	return doBlizzardRequest[ItemResponse](ctx, c, u)
}

// bearerToken returns a cached OAuth client-credentials token, refreshing it
// shortly before expiry.
func (c *BlizzardClient) bearerToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.token, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("https://%s.battle.net/oauth/token", c.region))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString("grant_type=client_credentials")
	req.URI().SetUsername(c.clientID)
	req.URI().SetPassword(c.clientSecret)

	if err := fetch.Do(ctx, c.client, req, resp, fetch.DefaultOptions()); err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return c.token, nil
}

func doBlizzardRequest[T any](ctx context.Context, c *BlizzardClient, reqURL string) (*T, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(reqURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+token)

	if err := fetch.Do(ctx, c.client, req, resp, fetch.DefaultOptions()); err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func realmSlug(realm string) string {
	return url.PathEscape(slugify(realm))
}

func nameSlug(name string) string {
	return url.PathEscape(slugify(name))
}

type CharacterProfileResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Realm struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"realm"`
	CharacterClass struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"character_class"`
	ActiveSpec struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"active_spec"`
	Level                 int     `json:"level"`
	AverageItemLevel      float64 `json:"average_item_level"`
	EquippedItemLevel     float64 `json:"equipped_item_level"`
	LastLoginTimestamp    int64   `json:"last_login_timestamp"`
	AchievementPoints     int     `json:"achievement_points"`
	MythicKeystoneProfile struct {
		Href string `json:"href"`
	} `json:"mythic_keystone_profile"`
}

type CharacterEquipmentResponse struct {
	EquippedItems []EquippedItemPayload `json:"equipped_items"`
}

type EquippedItemPayload struct {
	Item struct {
		ID int `json:"id"`
	} `json:"item"`
	Slot struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"slot"`
	Name  string `json:"name"`
	Level struct {
		Value int `json:"value"`
	} `json:"level"`
	BonusList    []int `json:"bonus_list"`
	Enchantments []struct {
		EnchantmentID   int `json:"enchantment_id"`
		EnchantmentSlot struct {
			ID int `json:"id"`
		} `json:"enchantment_slot"`
	} `json:"enchantments"`
}

type CharacterMountsResponse struct {
	Mounts []struct {
		Mount struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"mount"`
	} `json:"mounts"`
}

type CharacterEncountersResponse struct {
	Expansions []struct {
		Expansion struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"expansion"`
		Instances []struct {
			Instance struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"instance"`
			Modes []struct {
				Difficulty struct {
					Type string `json:"type"`
					Name string `json:"name"`
				} `json:"difficulty"`
				Progress struct {
					CompletedCount int `json:"completed_count"`
					TotalCount     int `json:"total_count"`
				} `json:"progress"`
			} `json:"modes"`
		} `json:"instances"`
	} `json:"expansions"`
}

type ItemResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Quality struct {
		Type string `json:"type"`
	} `json:"quality"`
	InventoryType struct {
		Type string `json:"type"`
	} `json:"inventory_type"`
	ItemClass struct {
		ID int `json:"id"`
	} `json:"item_class"`
	ItemSubclass struct {
		ID int `json:"id"`
	} `json:"item_subclass"`
}
