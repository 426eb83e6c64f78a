package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckpro/internal/models"
)

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, srv.URL, srv.URL, 2*time.Second)
}

func TestFetchFleetPlainObject(t *testing.T) {
	srv := feedServer(t, `{"TRK-001": [{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:00:00Z"}]}`)
	defer srv.Close()

	fleet, err := newTestClient(srv).FetchFleet(context.Background())
	require.NoError(t, err)
	require.Len(t, fleet["TRK-001"], 1)
	assert.Equal(t, "TRK-001", fleet["TRK-001"][0].TruckID)
}

func TestFetchFleetDoubleEncoded(t *testing.T) {
	inner := `{"TRK-001": [{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:00:00Z"}]}`
	quoted, err := json.Marshal(inner)
	require.NoError(t, err)

	srv := feedServer(t, string(quoted))
	defer srv.Close()

	fleet, err := newTestClient(srv).FetchFleet(context.Background())
	require.NoError(t, err)
	assert.Len(t, fleet["TRK-001"], 1)
}

func TestFetchFleetEnvelopeBody(t *testing.T) {
	inner := `{"TRK-001": [{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:00:00Z"}]}`
	envelope := map[string]string{"body": inner}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	srv := feedServer(t, string(body))
	defer srv.Close()

	fleet, err := newTestClient(srv).FetchFleet(context.Background())
	require.NoError(t, err)
	assert.Len(t, fleet["TRK-001"], 1)
}

func TestFetchFleetMalformedPayload(t *testing.T) {
	for _, body := range []string{`42`, `"not json at all"`, ``} {
		srv := feedServer(t, body)
		_, err := newTestClient(srv).FetchFleet(context.Background())
		srv.Close()
		assert.ErrorIs(t, err, models.ErrMalformedPayload, "body %q", body)
	}
}

func TestFetchFleetArrayIsMalformed(t *testing.T) {
	srv := feedServer(t, `[{"truck_id": "TRK-001"}]`)
	defer srv.Close()

	_, err := newTestClient(srv).FetchFleet(context.Background())
	assert.ErrorIs(t, err, models.ErrMalformedPayload)
}

func TestFetchFleetSortsAndCapsHistory(t *testing.T) {
	var entries []string
	for i := 19; i >= 0; i-- { // delivered newest first, 20 entries
		entries = append(entries, fmt.Sprintf(`{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:%02d:00Z"}`, i))
	}
	body := fmt.Sprintf(`{"TRK-001": [%s]}`, strings.Join(entries, ","))

	srv := feedServer(t, body)
	defer srv.Close()

	fleet, err := newTestClient(srv).FetchFleet(context.Background())
	require.NoError(t, err)

	seq := fleet["TRK-001"]
	require.Len(t, seq, 15)
	assert.Equal(t, "2026-08-30T10:05:00Z", seq[0].Timestamp, "oldest surviving entry")
	assert.Equal(t, "2026-08-30T10:19:00Z", seq[14].Timestamp, "newest entry last")
	for i := 1; i < len(seq); i++ {
		prev, _ := seq[i-1].Time()
		cur, _ := seq[i].Time()
		assert.False(t, cur.Before(prev), "sequence must be non-decreasing at %d", i)
	}
}

func TestFetchFleetLiftsNestedLocation(t *testing.T) {
	srv := feedServer(t, `{"TRK-001": [{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:00:00Z",
		"location": {"origin_city": "Pune", "destination_city": "Nagpur"}}]}`)
	defer srv.Close()

	fleet, err := newTestClient(srv).FetchFleet(context.Background())
	require.NoError(t, err)

	r := fleet["TRK-001"][0]
	assert.Equal(t, "Pune", r.OriginCity)
	assert.Equal(t, "Nagpur", r.DestinationCity)
}

func TestFetchTruckArrayTakesFirstElement(t *testing.T) {
	srv := feedServer(t, `[{"truck_id": "TRK-001", "driver_name": "Asha"}, {"truck_id": "TRK-001", "driver_name": "Old"}]`)
	defer srv.Close()

	reading, err := newTestClient(srv).FetchTruck(context.Background(), "TRK-001")
	require.NoError(t, err)
	assert.Equal(t, "Asha", reading.DriverName)
}

func TestFetchTruckObjectPayload(t *testing.T) {
	srv := feedServer(t, `{"truck_id": "TRK-001", "engine_temp_c": 95.5}`)
	defer srv.Close()

	reading, err := newTestClient(srv).FetchTruck(context.Background(), "TRK-001")
	require.NoError(t, err)
	assert.Equal(t, 95.5, reading.EngineTempC)
}

func TestFetchTruckEmptyArray(t *testing.T) {
	srv := feedServer(t, `[]`)
	defer srv.Close()

	_, err := newTestClient(srv).FetchTruck(context.Background(), "TRK-001")
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}

func TestFetchTruckHistoryFiltersByTruck(t *testing.T) {
	srv := feedServer(t, `[
		{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:01:00Z"},
		{"truck_id": "TRK-002", "timestamp": "2026-08-30T10:02:00Z"},
		{"truck_id": "TRK-001", "timestamp": "2026-08-30T10:00:00Z"}
	]`)
	defer srv.Close()

	seq, err := newTestClient(srv).FetchTruckHistory(context.Background(), "TRK-001")
	require.NoError(t, err)
	require.Len(t, seq, 2)
	assert.Equal(t, "2026-08-30T10:00:00Z", seq[0].Timestamp)
	assert.Equal(t, "2026-08-30T10:01:00Z", seq[1].Timestamp)
}

func TestFetchTruckHistoryObjectIsMalformed(t *testing.T) {
	srv := feedServer(t, `{"TRK-001": []}`)
	defer srv.Close()

	_, err := newTestClient(srv).FetchTruckHistory(context.Background(), "TRK-001")
	assert.ErrorIs(t, err, models.ErrMalformedPayload)
}

func TestFetchFeedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchFleet(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrMalformedPayload))
}
