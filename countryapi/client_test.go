package countryapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/wander-log/api-go/cache"
	"github.com/wander-log/api-go/countryapi"
)

func stubProxy(t *testing.T, hits *int64, countries []countryapi.Country) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		if len(countries) == 0 {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "Country Not Found", "message": "Country not found",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": countries})
	}))
	t.Cleanup(server.Close)
	return server
}

var france = countryapi.Country{
	Name:       "France",
	Currencies: []countryapi.Currency{{Code: "EUR", Name: "Euro", Symbol: "€"}},
	Capital:    "Paris",
	Languages:  []string{"French"},
	Flag:       countryapi.Flag{PNG: "https://flagcdn.com/w320/fr.png"},
	Cca3:       "FRA",
}

func TestValidate(t *testing.T) {
	server := stubProxy(t, nil, []countryapi.Country{france})
	client := countryapi.New(server.URL, "key", nil)

	details, err := client.Validate(context.Background(), "France")
	assert.NoError(t, err)
	assert.Equal(t, "FRA", details.Cca3)
	assert.Equal(t, "Euro", details.Currency)
	assert.Equal(t, "Paris", details.Capital)
	assert.Equal(t, "https://flagcdn.com/w320/fr.png", details.Flag)
}

func TestValidateUnknownCountry(t *testing.T) {
	server := stubProxy(t, nil, nil)
	client := countryapi.New(server.URL, "key", nil)

	_, err := client.Validate(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, countryapi.ErrInvalidCountry))

	_, err = client.Validate(context.Background(), "  ")
	assert.True(t, errors.Is(err, countryapi.ErrInvalidCountry))
}

func TestValidateUnreachableProxy(t *testing.T) {
	server := stubProxy(t, nil, []countryapi.Country{france})
	server.Close()
	client := countryapi.New(server.URL, "key", nil)

	// a dead proxy blocks writes the same way an unknown country does
	_, err := client.Validate(context.Background(), "France")
	assert.True(t, errors.Is(err, countryapi.ErrInvalidCountry))
}

func TestEnrichIsLenient(t *testing.T) {
	server := stubProxy(t, nil, nil)
	client := countryapi.New(server.URL, "key", nil)

	enriched := client.Enrich(context.Background(), "Atlantis", "")
	assert.Nil(t, enriched.Flag)
	assert.Nil(t, enriched.Currency)
	assert.Nil(t, enriched.Capital)
}

func TestEnrichPrefersCca3Match(t *testing.T) {
	georgiaCountry := countryapi.Country{
		Name:    "Georgia",
		Capital: "Tbilisi",
		Cca3:    "GEO",
	}
	georgiaState := countryapi.Country{
		Name:    "South Georgia",
		Capital: "King Edward Point",
		Cca3:    "SGS",
	}
	server := stubProxy(t, nil, []countryapi.Country{georgiaState, georgiaCountry})
	client := countryapi.New(server.URL, "key", nil)

	enriched := client.Enrich(context.Background(), "Georgia", "GEO")
	if assert.NotNil(t, enriched.Capital) {
		assert.Equal(t, "Tbilisi", *enriched.Capital)
	}

	// without a cca3 hint, the first result wins
	enriched = client.Enrich(context.Background(), "Georgia", "")
	if assert.NotNil(t, enriched.Capital) {
		assert.Equal(t, "King Edward Point", *enriched.Capital)
	}
}

func TestFetchByNameUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := &cache.RedisCache{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	var hits int64
	server := stubProxy(t, &hits, []countryapi.Country{france})
	client := countryapi.New(server.URL, "key", redisCache)

	first, err := client.FetchByName(context.Background(), "France")
	assert.NoError(t, err)
	assert.Len(t, first, 1)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))

	// second lookup is served from redis
	second, err := client.FetchByName(context.Background(), "france")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits))

	assert.True(t, mr.Exists("country:name:france"))
}

func TestNilCacheIsAlwaysMiss(t *testing.T) {
	var hits int64
	server := stubProxy(t, &hits, []countryapi.Country{france})
	client := countryapi.New(server.URL, "key", nil)

	_, err := client.FetchByName(context.Background(), "France")
	assert.NoError(t, err)
	_, err = client.FetchByName(context.Background(), "France")
	assert.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}
