package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"

	"flightpocket/pkg/logger"
)

// HTTPFlightFeedRepository talks to the remote flight feed over HTTP. It is
// the only component with network side effects besides the connectivity
// probe, which it also provides.
type HTTPFlightFeedRepository struct {
	logger  logger.Logger
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPFlightFeedRepository creates a new flight feed repository. A nil
// client falls back to a default with a 30 second timeout; callers using
// OAuth pass the token-injecting client instead.
func NewHTTPFlightFeedRepository(baseURL, apiKey string, client *http.Client, logger logger.Logger) repository.FlightFeedRepository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPFlightFeedRepository{
		logger:  logger,
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// FetchUpcoming retrieves the current flight list from the feed
func (r *HTTPFlightFeedRepository) FetchUpcoming(ctx context.Context) ([]entity.Flight, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.listURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight feed returned status %d", resp.StatusCode)
	}

	var response struct {
		Data []struct {
			FlightStatus string `json:"flight_status"`
			Airline      struct {
				Name string `json:"name"`
			} `json:"airline"`
			Flight struct {
				IATA string `json:"iata"`
			} `json:"flight"`
			Departure struct {
				Airport   string    `json:"airport"`
				Scheduled time.Time `json:"scheduled"`
			} `json:"departure"`
			Arrival struct {
				Airport string `json:"airport"`
			} `json:"arrival"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode flight list: %w", err)
	}

	flights := make([]entity.Flight, 0, len(response.Data))
	for _, item := range response.Data {
		flights = append(flights, entity.Flight{
			Airline: item.Airline.Name,
			Number:  item.Flight.IATA,
			Departure: entity.Departure{
				Airport:   item.Departure.Airport,
				Scheduled: item.Departure.Scheduled,
			},
			ArrivalAirport: item.Arrival.Airport,
			Status:         item.FlightStatus,
		})
	}

	r.logger.Debug("Fetched flight list", "count", len(flights))
	return flights, nil
}

// SubmitInquiry delivers a flight-info request to the feed's submit endpoint
func (r *HTTPFlightFeedRepository) SubmitInquiry(ctx context.Context, request *entity.PendingRequest) error {
	body := map[string]interface{}{
		"name":         request.Name,
		"flightNumber": request.FlightNumber,
		"timestamp":    request.Timestamp.UTC().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal inquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.submitURL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit inquiry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("submit endpoint returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Inquiry delivered", "flightNumber", request.FlightNumber, "requestId", request.ID)
	return nil
}

// Ping checks feed reachability. Any HTTP response counts as reachable; only
// transport errors mean offline.
func (r *HTTPFlightFeedRepository) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.listURL(), nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (r *HTTPFlightFeedRepository) listURL() string {
	u := fmt.Sprintf("%s/flights", r.baseURL)
	if r.apiKey != "" {
		u += "?access_key=" + url.QueryEscape(r.apiKey)
	}
	return u
}

func (r *HTTPFlightFeedRepository) submitURL() string {
	u := fmt.Sprintf("%s/requests", r.baseURL)
	if r.apiKey != "" {
		u += "?access_key=" + url.QueryEscape(r.apiKey)
	}
	return u
}
