package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samerh/leadline/internal/models"
)

const (
	mapsBaseURL   = "https://maps.googleapis.com/maps/api"
	placesUA      = "leadline/1.0"
	placesTimeout = 30 * time.Second
)

// PlacesClient is a Google Maps Web Service client covering the three
// calls the enrichment pipeline needs: geocode, nearby search, and place
// details.
type PlacesClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *log.Logger
}

// NewPlacesClient creates a places client with a 30 second timeout
func NewPlacesClient(apiKey string) *PlacesClient {
	return &PlacesClient{
		httpClient: &http.Client{
			Timeout: placesTimeout,
		},
		apiKey:  apiKey,
		baseURL: mapsBaseURL,
	}
}

// NewPlacesClientWithLogging creates a places client that logs requests to
// api.log in the same directory as the project database
func NewPlacesClientWithLogging(apiKey string, dbPath string) *PlacesClient {
	logDir := filepath.Dir(dbPath)
	logFile := filepath.Join(logDir, "api.log")

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Fall back to a client without file logging
		return NewPlacesClient(apiKey)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "API",
	})

	return &PlacesClient{
		httpClient: &http.Client{
			Timeout: placesTimeout,
		},
		apiKey:  apiKey,
		baseURL: mapsBaseURL,
		logger:  logger,
	}
}

// geocodeResponse is the Geocoding API response shape
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves a free-text location to a coordinate. A nil result
// with nil error means the location could not be resolved.
func (c *PlacesClient) Geocode(location string) (*models.Coordinate, error) {
	params := url.Values{}
	params.Set("address", location)
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/geocode/json?%s", c.baseURL, params.Encode())

	var resp geocodeResponse
	if err := c.getJSON(reqURL, "geocode", &resp); err != nil {
		return nil, err
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("geocode API status %s: %s", resp.Status, resp.ErrorMessage)
	}

	loc := resp.Results[0].Geometry.Location
	return &models.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// nearbyResponse is the Places Nearby Search response shape
type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string   `json:"name"`
		PlaceID          string   `json:"place_id"`
		Vicinity         string   `json:"vicinity"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Types            []string `json:"types"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// NearbySearch queries establishments around a coordinate matching the
// category keyword. Each result becomes a business stub; phone and
// website come later from the detail fetch.
func (c *PlacesClient) NearbySearch(coord models.Coordinate, radiusMeters int, keyword string) ([]models.Business, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", coord.Lat, coord.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", "establishment")
	params.Set("keyword", keyword)
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/place/nearbysearch/json?%s", c.baseURL, params.Encode())

	var resp nearbyResponse
	if err := c.getJSON(reqURL, "nearby search", &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search API status %s: %s", resp.Status, resp.ErrorMessage)
	}

	stubs := make([]models.Business, 0, len(resp.Results))
	for _, r := range resp.Results {
		stubs = append(stubs, models.Business{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Address:     r.Vicinity,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			Categories:  r.Types,
			MapURL:      fmt.Sprintf("https://maps.google.com/?cid=%s", r.PlaceID),
		})
	}

	return stubs, nil
}

// detailsResponse is the Place Details response shape
type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name                 string   `json:"name"`
		FormattedAddress     string   `json:"formatted_address"`
		FormattedPhoneNumber string   `json:"formatted_phone_number"`
		Website              string   `json:"website"`
		Rating               float64  `json:"rating"`
		UserRatingsTotal     int      `json:"user_ratings_total"`
		Types                []string `json:"types"`
	} `json:"result"`
	ErrorMessage string `json:"error_message"`
}

// PlaceDetails fetches the contact fields for one place
func (c *PlacesClient) PlaceDetails(placeID string) (*models.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "name,formatted_address,formatted_phone_number,website,rating,user_ratings_total,types")
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/place/details/json?%s", c.baseURL, params.Encode())

	var resp detailsResponse
	if err := c.getJSON(reqURL, "place details", &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("place details API status %s: %s", resp.Status, resp.ErrorMessage)
	}

	return &models.PlaceDetails{
		Name:        resp.Result.Name,
		Address:     resp.Result.FormattedAddress,
		Phone:       resp.Result.FormattedPhoneNumber,
		Website:     resp.Result.Website,
		Rating:      resp.Result.Rating,
		RatingCount: resp.Result.UserRatingsTotal,
		Categories:  resp.Result.Types,
	}, nil
}

// getJSON performs a GET request and decodes the JSON body
func (c *PlacesClient) getJSON(reqURL, operation string, out any) error {
	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("User-Agent", placesUA)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Info("GET", "operation", operation)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "operation", operation, "error", err)
		}
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if c.logger != nil {
			c.logger.Error("API error", "operation", operation, "status", resp.StatusCode, "response", string(body))
		}
		return fmt.Errorf("%s API error (status %d): %s", operation, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	return nil
}
