package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"partyline/internal/cache"
	"partyline/internal/model"
)

// GeocoderService resolves place names to coordinates through an external
// nominatim-format search endpoint. The collaborator allows roughly one
// request per second, so lookups go through a limiter and a redis cache.
// Geocoding is best-effort enrichment: a miss or failure returns (nil, nil)
// or an error the caller logs and moves past, never a reason to drop the
// underlying text answer.
type GeocoderService struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cache   cache.GeoCache
}

// NewGeocoderService creates a new geocoder service. An empty baseURL
// disables lookups entirely.
func NewGeocoderService(baseURL string, geoCache cache.GeoCache) *GeocoderService {
	return &GeocoderService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		cache:   geoCache,
	}
}

type geocodeResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode resolves a place name. Returns (nil, nil) when the place is
// unknown or geocoding is disabled.
func (s *GeocoderService) Geocode(ctx context.Context, place string) (*model.GeoPoint, error) {
	if place == "" || s.baseURL == "" {
		return nil, nil
	}

	if s.cache != nil {
		if point, err := s.cache.Get(ctx, place); err == nil && point != nil {
			return point, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s?q=%s&format=json&limit=1", s.baseURL, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode %q: status %d", place, resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode %q: decode: %w", place, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: bad lat %q", place, results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: bad lon %q", place, results[0].Lon)
	}

	point := &model.GeoPoint{
		Place: results[0].DisplayName,
		Lat:   lat,
		Lng:   lng,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, place, point); err != nil {
			log.Printf("geo cache set failed for %q: %v", place, err)
		}
	}
	return point, nil
}
