package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/countryapi"
)

const defaultUpstreamURL = "https://restcountries.com/v3.1"

// CountriesController proxies the public restcountries API, filtering each
// country down to the fields the journal actually uses.
type CountriesController struct {
	UpstreamURL string
	HTTP        *http.Client
}

func NewCountriesController() *CountriesController {
	upstream := os.Getenv("COUNTRIES_UPSTREAM_URL")
	if upstream == "" {
		upstream = defaultUpstreamURL
	}
	return &CountriesController{
		UpstreamURL: upstream,
		HTTP:        &http.Client{Timeout: 10 * time.Second},
	}
}

// upstreamCountry mirrors the restcountries v3.1 response shape.
type upstreamCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Capital   []string          `json:"capital"`
	Languages map[string]string `json:"languages"`
	Flags     struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
		Alt string `json:"alt"`
	} `json:"flags"`
	Cca3 string `json:"cca3"`
}

func filterCountry(country upstreamCountry) countryapi.Country {
	filtered := countryapi.Country{
		Name:    country.Name.Common,
		Capital: "N/A",
		Flag: countryapi.Flag{
			PNG: country.Flags.PNG,
			SVG: country.Flags.SVG,
			Alt: country.Flags.Alt,
		},
		Cca3:       country.Cca3,
		Currencies: []countryapi.Currency{},
		Languages:  []string{},
	}

	if len(country.Capital) > 0 {
		filtered.Capital = country.Capital[0]
	}

	codes := make([]string, 0, len(country.Currencies))
	for code := range country.Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		currency := country.Currencies[code]
		filtered.Currencies = append(filtered.Currencies, countryapi.Currency{
			Code:   code,
			Name:   currency.Name,
			Symbol: currency.Symbol,
		})
	}

	names := make([]string, 0, len(country.Languages))
	for _, name := range country.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	filtered.Languages = names

	return filtered
}

func (cc *CountriesController) fetch(c *gin.Context, path string) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, cc.UpstreamURL+path, nil)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Upstream Unavailable", "Error fetching country data")
		return
	}

	resp, err := cc.HTTP.Do(req)
	if err != nil {
		log.Printf("restcountries request failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Upstream Unavailable", "Error fetching country data")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		respondError(c, http.StatusNotFound, "Country Not Found", "Country not found")
		return
	}
	if resp.StatusCode != http.StatusOK {
		respondError(c, http.StatusInternalServerError, "Upstream Unavailable",
			fmt.Sprintf("Country data source returned status %d", resp.StatusCode))
		return
	}

	var upstream []upstreamCountry
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		respondError(c, http.StatusInternalServerError, "Upstream Unavailable", "Error decoding country data")
		return
	}
	if len(upstream) == 0 {
		respondError(c, http.StatusNotFound, "Country Not Found", "Country not found")
		return
	}

	filtered := make([]countryapi.Country, 0, len(upstream))
	for _, country := range upstream {
		filtered = append(filtered, filterCountry(country))
	}

	respondSuccess(c, http.StatusOK, "Country data retrieved", filtered)
}

func (cc *CountriesController) GetAllCountries(c *gin.Context) {
	cc.fetch(c, "/all")
}

func (cc *CountriesController) GetCountryByName(c *gin.Context) {
	cc.fetch(c, "/name/"+url.PathEscape(c.Param("name")))
}

func (cc *CountriesController) GetCountriesByRegion(c *gin.Context) {
	cc.fetch(c, "/region/"+url.PathEscape(c.Param("region")))
}

func (cc *CountriesController) GetCountryByCca3(c *gin.Context) {
	cc.fetch(c, "/alpha/"+url.PathEscape(c.Param("cca3")))
}
