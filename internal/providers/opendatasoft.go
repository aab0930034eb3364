package providers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/city-weather/internal/cities"
)

const (
	defaultOpenDataSoftURL = "https://public.opendatasoft.com/api/records/1.0/search/"
	defaultCitiesDataset   = "geonames-all-cities-with-a-population-1000"
	defaultCitiesPageSize  = 1000
)

// OpenDataSoftProvider implements the cities.Provider interface for the
// OpenDataSoft records API serving the GeoNames city dataset.
type OpenDataSoftProvider struct {
	name     string
	baseURL  string
	dataset  string
	pageSize int
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewOpenDataSoftProvider creates a city provider. Empty values select the
// public endpoint, the GeoNames dataset and a page of 1000 rows.
func NewOpenDataSoftProvider(client *http.Client, baseURL, dataset string, pageSize, maxRetries int) *OpenDataSoftProvider {
	if baseURL == "" {
		baseURL = defaultOpenDataSoftURL
	}
	if dataset == "" {
		dataset = defaultCitiesDataset
	}
	if pageSize <= 0 {
		pageSize = defaultCitiesPageSize
	}

	return &OpenDataSoftProvider{
		name:     "opendatasoft",
		baseURL:  baseURL,
		dataset:  dataset,
		pageSize: pageSize,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(maxRetries),
		},
		circuit: newCircuitBreaker("opendatasoft"),
	}
}

func (p *OpenDataSoftProvider) Name() string {
	return p.name
}

// FetchCities retrieves one page of city records. Records without a name are skipped.
func (p *OpenDataSoftProvider) FetchCities(ctx context.Context) ([]cities.Record, error) {
	values := url.Values{}
	values.Set("dataset", p.dataset)
	values.Set("rows", strconv.Itoa(p.pageSize))
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		NHits   int `json:"nhits"`
		Records []struct {
			RecordID string `json:"recordid"`
			Fields   struct {
				Name        string `json:"name"`
				CouNameEn   string `json:"cou_name_en"`
				CountryCode string `json:"country_code"`
				Timezone    string `json:"timezone"`
				Population  int64  `json:"population"`
			} `json:"fields"`
		} `json:"records"`
	}

	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return nil, err
	}

	records := make([]cities.Record, 0, len(payload.Records))
	skipped := 0
	for _, r := range payload.Records {
		if r.Fields.Name == "" {
			skipped++
			continue
		}
		records = append(records, cities.Record{
			ID:          r.RecordID,
			Name:        r.Fields.Name,
			CountryName: r.Fields.CouNameEn,
			CountryCode: r.Fields.CountryCode,
			Timezone:    r.Fields.Timezone,
			Population:  r.Fields.Population,
		})
	}

	if skipped > 0 {
		log.Printf("INFO: %s: skipped %d records without a name", p.name, skipped)
	}
	log.Printf("DEBUG: %s: loaded %d of %d cities", p.name, len(records), payload.NHits)

	return records, nil
}

var _ cities.Provider = (*OpenDataSoftProvider)(nil)
