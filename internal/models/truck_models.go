package models

import "time"

// ReadingLocation is the nested route block some feed variants use instead
// of top-level origin/destination fields.
type ReadingLocation struct {
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
}

// TruckReading is one telemetry sample for one truck at one point in time,
// in the wire shape the remote feeds produce. The pricing fields are only
// present on the shipper feed.
type TruckReading struct {
	TruckID             string           `json:"truck_id"`
	TripID              string           `json:"trip_id,omitempty"`
	DriverName          string           `json:"driver_name"`
	TripStatus          string           `json:"trip_status"`
	Location            *ReadingLocation `json:"location,omitempty"`
	OriginCity          string           `json:"origin_city"`
	DestinationCity     string           `json:"destination_city"`
	DistanceCoveredKm   float64          `json:"distance_covered_km"`
	CityType            string           `json:"city_type"`
	EngineTempC         float64          `json:"engine_temp_c"`
	OilLevelPercent     float64          `json:"oil_level_percent"`
	CoolantLevelPercent float64          `json:"coolant_level_percent"`
	BatteryVoltageV     float64          `json:"battery_voltage_v"`
	BrakePadHealth      float64          `json:"brake_pad_health"`
	MaintenanceAlerts   string           `json:"maintenance_alerts"`
	SuggestedActions    string           `json:"suggested_actions"`
	Timestamp           string           `json:"timestamp"`

	BaseRate        *float64 `json:"base_rate,omitempty"`
	RatePerKm       *float64 `json:"rate_per_km,omitempty"`
	CalculatedPrice *float64 `json:"calculated_price,omitempty"`
	BackhaulStatus  string   `json:"backhaul_status,omitempty"`
}

// Time parses the reading's capture timestamp. The second return value is
// false when the feed delivered an unparseable timestamp; such readings are
// kept but sort after every valid one.
func (r TruckReading) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, r.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TripStatusActive is the trip status value the feeds use for a truck that
// is currently on the road.
const TripStatusActive = "Active"

// BackhaulNotUtilized is the backhaul_status value meaning the truck has
// unused return capacity, which is what makes it discount-eligible. The feed
// embeds the emoji in the value.
const BackhaulNotUtilized = "❌ Backhaul Not Utilized"
