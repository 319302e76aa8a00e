package countryapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/wander-log/api-go/cache"
)

// ErrInvalidCountry is returned by Validate when a country name cannot be
// resolved. Post writes are blocked on it; reads never see it.
var ErrInvalidCountry = errors.New("invalid country")

// ErrCountryNotFound is returned when the proxy answers 404 for a lookup.
var ErrCountryNotFound = errors.New("country not found")

type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Flag struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

// Country is the filtered shape served by the country proxy.
type Country struct {
	Name       string     `json:"name"`
	Currencies []Currency `json:"currencies"`
	Capital    string     `json:"capital"`
	Languages  []string   `json:"languages"`
	Flag       Flag       `json:"flag"`
	Cca3       string     `json:"cca3"`
}

// Details are the fields a validated post write records.
type Details struct {
	Flag     string `json:"flag"`
	Currency string `json:"currency"`
	Capital  string `json:"capital"`
	Cca3     string `json:"cca3"`
}

// Enrichment decorates a post on read paths. All fields are nil when the
// lookup failed; callers return the post undecorated rather than erroring.
type Enrichment struct {
	Flag     *string `json:"country_flag"`
	Currency *string `json:"country_currency"`
	Capital  *string `json:"country_capital"`
}

const cacheTTL = 12 * time.Hour

// Client talks to the country proxy microservice with its service API key.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Cache   *cache.RedisCache
}

func New(baseURL, apiKey string, redisCache *cache.RedisCache) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:4000/api"
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Cache:   redisCache,
	}
}

func NewFromEnv(redisCache *cache.RedisCache) *Client {
	return New(os.Getenv("COUNTRY_API_URL"), os.Getenv("COUNTRY_API_KEY"), redisCache)
}

// FetchByName looks a country up by (possibly partial) name, going through
// the redis cache first. Timeouts and transport failures are reported the
// same way as a missing country.
func (c *Client) FetchByName(ctx context.Context, name string) ([]Country, error) {
	cacheKey := "country:name:" + strings.ToLower(strings.TrimSpace(name))

	if cached, err := c.Cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var countries []Country
		if err := json.Unmarshal([]byte(cached), &countries); err == nil {
			return countries, nil
		}
	}

	countries, err := c.get(ctx, "/countries/name/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(countries); err == nil {
		if err := c.Cache.Set(ctx, cacheKey, string(payload), cacheTTL); err != nil {
			log.Printf("country cache set failed: %v", err)
		}
	}

	return countries, nil
}

func (c *Client) FetchByRegion(ctx context.Context, region string) ([]Country, error) {
	return c.get(ctx, "/countries/region/"+url.PathEscape(region))
}

func (c *Client) FetchByCca3(ctx context.Context, cca3 string) ([]Country, error) {
	return c.get(ctx, "/countries/cca3/"+url.PathEscape(cca3))
}

func (c *Client) FetchAll(ctx context.Context) ([]Country, error) {
	return c.get(ctx, "/countries")
}

func (c *Client) get(ctx context.Context, path string) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCountryNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country api returned status %d", resp.StatusCode)
	}

	// The proxy wraps every success in the standard envelope.
	var payload struct {
		Success bool      `json:"success"`
		Data    []Country `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, fmt.Errorf("country api reported failure")
	}
	return payload.Data, nil
}

// pick prefers the cca3 match when the name lookup is ambiguous, falling
// back to the first result.
func pick(countries []Country, cca3 string) *Country {
	if len(countries) == 0 {
		return nil
	}
	if cca3 != "" {
		for i := range countries {
			if strings.EqualFold(countries[i].Cca3, cca3) {
				return &countries[i]
			}
		}
	}
	return &countries[0]
}

// Validate resolves a country strictly. Any failure, including upstream
// unavailability, is collapsed into ErrInvalidCountry so post writes are
// rejected with a single error kind.
func (c *Client) Validate(ctx context.Context, name string) (*Details, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidCountry
	}

	countries, err := c.FetchByName(ctx, name)
	if err != nil {
		log.Printf("country validation failed for %q: %v", name, err)
		return nil, ErrInvalidCountry
	}

	country := pick(countries, "")
	if country == nil {
		return nil, ErrInvalidCountry
	}

	details := &Details{
		Flag:    country.Flag.PNG,
		Capital: country.Capital,
		Cca3:    country.Cca3,
	}
	if details.Flag == "" {
		details.Flag = country.Flag.SVG
	}
	if len(country.Currencies) > 0 {
		details.Currency = country.Currencies[0].Name
	}
	return details, nil
}

// Enrich resolves flag/currency/capital for a post on a read path. It never
// fails: on any lookup error the enrichment fields stay nil.
func (c *Client) Enrich(ctx context.Context, name, cca3 string) Enrichment {
	if strings.TrimSpace(name) == "" {
		return Enrichment{}
	}

	countries, err := c.FetchByName(ctx, name)
	if err != nil {
		log.Printf("country enrichment failed for %q: %v", name, err)
		return Enrichment{}
	}

	country := pick(countries, cca3)
	if country == nil {
		return Enrichment{}
	}

	var enriched Enrichment
	if country.Flag.PNG != "" {
		enriched.Flag = &country.Flag.PNG
	} else if country.Flag.SVG != "" {
		enriched.Flag = &country.Flag.SVG
	}
	if len(country.Currencies) > 0 && country.Currencies[0].Name != "" {
		enriched.Currency = &country.Currencies[0].Name
	}
	if country.Capital != "" {
		enriched.Capital = &country.Capital
	}
	return enriched
}
