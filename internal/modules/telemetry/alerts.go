package telemetry

import (
	"math"
	"sort"

	"truckpro/internal/models"
)

// Health thresholds applied to every reading. Engine temperature and battery
// voltage have a second, critical tier.
const (
	engineTempWarn     = 110.0
	engineTempCritical = 120.0
	batteryVoltWarn    = 11.5
	batteryVoltLow     = 11.0
	coolantPctMin      = 45.0
	brakePadPctMin     = 60.0
	oilPctMin          = 50.0

	coolantPctUrgent = 30.0
	brakePadPctWorn  = 40.0
)

// Priority ranks a truck's combined alert severity.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// noAlertSentinels are feed values of maintenance_alerts that mean "nothing
// to report". Matching is exact.
var noAlertSentinels = map[string]struct{}{
	"":                      {},
	"None":                  {},
	"No maintenance alerts": {},
}

// Warnings evaluates a reading against the health thresholds and returns one
// message per breached threshold, critical wording where the second tier is
// crossed. A nominal reading yields an empty slice.
func Warnings(r models.TruckReading) []string {
	var out []string
	switch {
	case r.EngineTempC > engineTempCritical:
		out = append(out, "Engine temperature critical")
	case r.EngineTempC > engineTempWarn:
		out = append(out, "Engine temperature high")
	}
	switch {
	case r.BatteryVoltageV < batteryVoltLow:
		out = append(out, "Battery voltage critically low")
	case r.BatteryVoltageV < batteryVoltWarn:
		out = append(out, "Battery voltage low")
	}
	if r.CoolantLevelPercent < coolantPctMin {
		out = append(out, "Coolant level low")
	}
	if r.BrakePadHealth < brakePadPctMin {
		out = append(out, "Brake pads worn")
	}
	if r.OilLevelPercent < oilPctMin {
		out = append(out, "Oil level low")
	}
	return out
}

// SuggestedActions derives the action list for a reading: one action per
// breached threshold, plus the feed's own free-text suggestion when it
// carries one. When nothing needs doing the list is exactly
// ["No actions required"].
func SuggestedActions(r models.TruckReading) []string {
	var out []string
	if r.EngineTempC > engineTempWarn {
		out = append(out, "Stop vehicle: engine overheating")
	}
	if r.BatteryVoltageV < batteryVoltWarn {
		out = append(out, "Schedule battery service soon")
	}
	if r.CoolantLevelPercent < coolantPctMin {
		out = append(out, "Schedule coolant refill at next stop")
	}
	if r.BrakePadHealth < brakePadPctMin {
		out = append(out, "Replace brake pads soon")
	}
	if r.OilLevelPercent < oilPctMin {
		out = append(out, "Top up engine oil")
	}
	if r.SuggestedActions != "" && r.SuggestedActions != "None" {
		out = append(out, r.SuggestedActions)
	}
	if len(out) == 0 {
		out = append(out, "No actions required")
	}
	return out
}

// HasMaintenanceAlert reports whether the feed's textual alert field carries
// an actual alert rather than one of the no-alert sentinels.
func HasMaintenanceAlert(r models.TruckReading) bool {
	_, sentinel := noAlertSentinels[r.MaintenanceAlerts]
	return !sentinel
}

// ClassifyPriority ranks a reading: high when the engine or battery crossed
// its critical tier, medium when a warning tier or the urgent coolant/brake
// bands are breached, low otherwise.
func ClassifyPriority(r models.TruckReading) Priority {
	if r.EngineTempC > engineTempCritical || r.BatteryVoltageV < batteryVoltLow {
		return PriorityHigh
	}
	if r.EngineTempC > engineTempWarn || r.CoolantLevelPercent < coolantPctUrgent || r.BrakePadHealth < brakePadPctWorn {
		return PriorityMedium
	}
	return PriorityLow
}

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// SortAlertsByPriority orders triage rows high first, stable within a tier.
func SortAlertsByPriority(alerts []models.MaintenanceAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return priorityRank[Priority(alerts[i].Priority)] < priorityRank[Priority(alerts[j].Priority)]
	})
}

// DrivingScore condenses brake pad health, oil level and engine temperature
// into a 0-100 score. Temperature contributes its headroom below 150°C.
func DrivingScore(r models.TruckReading) int {
	tempHeadroom := math.Max(0, 150-r.EngineTempC)
	return int(math.Round(100 * (r.BrakePadHealth + r.OilLevelPercent + tempHeadroom) / 270))
}

// ScoreTier labels a driving score.
func ScoreTier(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	default:
		return "Needs Improvement"
	}
}
