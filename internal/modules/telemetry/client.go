package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"truckpro/internal/models"
)

// historyCap is the most recent entries kept per truck after a fetch.
const historyCap = 15

// maxUnwrap bounds the nested-JSON unwrapping loop. The feeds deliver at
// worst a JSON string whose content is an envelope whose body field is a
// JSON string, so two unwraps always suffice.
const maxUnwrap = 2

// Client fetches and normalizes the three remote telemetry feeds.
type Client struct {
	http       *http.Client
	fleetURL   string
	driverURL  string
	shipperURL string
}

// NewClient creates a telemetry client for the configured feed endpoints.
func NewClient(fleetURL, driverURL, shipperURL string, timeout time.Duration) *Client {
	return &Client{
		http:       &http.Client{Timeout: timeout},
		fleetURL:   fleetURL,
		driverURL:  driverURL,
		shipperURL: shipperURL,
	}
}

// payloadKind tags the shape of an unwrapped feed payload.
type payloadKind int

const (
	payloadInvalid payloadKind = iota
	payloadObject
	payloadArray
)

// unwrapPayload peels up to maxUnwrap layers of string-encoding off a feed
// response and classifies the result. Two encodings occur in the wild: the
// whole body as a JSON string containing JSON, and an envelope object whose
// `body` field is a JSON string.
func unwrapPayload(body []byte) (json.RawMessage, payloadKind, error) {
	raw := json.RawMessage(bytes.TrimSpace(body))

	for unwraps := 0; ; {
		if len(raw) == 0 {
			return nil, payloadInvalid, models.ErrMalformedPayload
		}
		switch raw[0] {
		case '"':
			if unwraps >= maxUnwrap {
				return nil, payloadInvalid, models.ErrMalformedPayload
			}
			var inner string
			if err := json.Unmarshal(raw, &inner); err != nil {
				return nil, payloadInvalid, models.ErrMalformedPayload
			}
			raw = json.RawMessage(bytes.TrimSpace([]byte(inner)))
			unwraps++
		case '{':
			var env struct {
				Body json.RawMessage `json:"body"`
			}
			if err := json.Unmarshal(raw, &env); err == nil && len(env.Body) > 0 && env.Body[0] == '"' && unwraps < maxUnwrap {
				var inner string
				if err := json.Unmarshal(env.Body, &inner); err != nil {
					return nil, payloadInvalid, models.ErrMalformedPayload
				}
				raw = json.RawMessage(bytes.TrimSpace([]byte(inner)))
				unwraps++
				continue
			}
			return raw, payloadObject, nil
		case '[':
			return raw, payloadArray, nil
		default:
			return nil, payloadInvalid, models.ErrMalformedPayload
		}
	}
}

// normalizeReading lifts the nested location block, when present, to the
// top-level origin/destination fields.
func normalizeReading(r *models.TruckReading) {
	if r.Location != nil {
		r.OriginCity = r.Location.OriginCity
		r.DestinationCity = r.Location.DestinationCity
	}
}

// sortAndCap orders readings by capture timestamp ascending (unparseable
// timestamps last) and keeps at most the newest historyCap entries.
func sortAndCap(seq []models.TruckReading) []models.TruckReading {
	sort.SliceStable(seq, func(i, j int) bool {
		ti, okI := seq[i].Time()
		tj, okJ := seq[j].Time()
		if okI != okJ {
			return okI // valid timestamps sort before invalid ones
		}
		if !okI {
			return false
		}
		return ti.Before(tj)
	})
	if len(seq) > historyCap {
		seq = seq[len(seq)-historyCap:]
	}
	return seq
}

func (c *Client) get(ctx context.Context, endpoint, truckID string) ([]byte, error) {
	target := endpoint
	if truckID != "" {
		q := url.Values{"truck_id": {truckID}}
		target = endpoint + "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("client.get: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client.get: feed answered %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client.get: %w", err)
	}
	return body, nil
}

// FetchFleet retrieves the fleet-wide feed: a mapping from truck id to that
// truck's chronologically sorted, capped reading history.
func (c *Client) FetchFleet(ctx context.Context) (map[string][]models.TruckReading, error) {
	body, err := c.get(ctx, c.fleetURL, "")
	if err != nil {
		return nil, err
	}

	raw, kind, err := unwrapPayload(body)
	if err != nil {
		return nil, err
	}
	if kind != payloadObject {
		return nil, models.ErrMalformedPayload
	}

	var byTruck map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byTruck); err != nil {
		return nil, models.ErrMalformedPayload
	}

	fleet := make(map[string][]models.TruckReading, len(byTruck))
	for truckID, entry := range byTruck {
		var seq []models.TruckReading
		if len(entry) > 0 && entry[0] == '{' {
			// Some variants deliver a single object instead of an array.
			var single models.TruckReading
			if err := json.Unmarshal(entry, &single); err != nil {
				return nil, models.ErrMalformedPayload
			}
			seq = []models.TruckReading{single}
		} else if err := json.Unmarshal(entry, &seq); err != nil {
			return nil, models.ErrMalformedPayload
		}
		for i := range seq {
			normalizeReading(&seq[i])
			if seq[i].TruckID == "" {
				seq[i].TruckID = truckID
			}
		}
		fleet[truckID] = sortAndCap(seq)
	}
	return fleet, nil
}

// FetchTruck retrieves the latest reading for one truck from the driver
// feed. An array payload yields its first element, an object payload is the
// reading itself.
func (c *Client) FetchTruck(ctx context.Context, truckID string) (models.TruckReading, error) {
	body, err := c.get(ctx, c.driverURL, truckID)
	if err != nil {
		return models.TruckReading{}, err
	}

	raw, kind, err := unwrapPayload(body)
	if err != nil {
		return models.TruckReading{}, err
	}

	var reading models.TruckReading
	switch kind {
	case payloadArray:
		var seq []models.TruckReading
		if err := json.Unmarshal(raw, &seq); err != nil {
			return models.TruckReading{}, models.ErrMalformedPayload
		}
		if len(seq) == 0 {
			return models.TruckReading{}, models.ErrEmptyDataset
		}
		reading = seq[0]
	case payloadObject:
		if err := json.Unmarshal(raw, &reading); err != nil {
			return models.TruckReading{}, models.ErrMalformedPayload
		}
	default:
		return models.TruckReading{}, models.ErrMalformedPayload
	}

	normalizeReading(&reading)
	return reading, nil
}

// FetchTruckHistory retrieves the pricing-augmented shipper feed for one
// truck: readings filtered to that truck, sorted ascending, capped. The
// result may be empty when the feed has nothing for the truck.
func (c *Client) FetchTruckHistory(ctx context.Context, truckID string) ([]models.TruckReading, error) {
	body, err := c.get(ctx, c.shipperURL, truckID)
	if err != nil {
		return nil, err
	}

	raw, kind, err := unwrapPayload(body)
	if err != nil {
		return nil, err
	}
	if kind != payloadArray {
		return nil, models.ErrMalformedPayload
	}

	var seq []models.TruckReading
	if err := json.Unmarshal(raw, &seq); err != nil {
		return nil, models.ErrMalformedPayload
	}

	filtered := seq[:0]
	for i := range seq {
		if seq[i].TruckID == truckID {
			normalizeReading(&seq[i])
			filtered = append(filtered, seq[i])
		}
	}
	return sortAndCap(filtered), nil
}
