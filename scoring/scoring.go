// Package scoring holds the pure heuristic scorers consumed by the wizard:
// win probability, logistics feasibility, and the linear price roll-up.
// All functions are total; malformed input yields a defaulted score, never a
// panic.
package scoring

import (
	"math"
	"strings"

	"tenderdesk-backend/models"
)

// depotCities are the regional depots of the rental fleet. A fleet
// description mentioning one of them earns the route-feasibility bonus.
// Umlaut and ASCII spellings are both listed.
var depotCities = []string{
	"berlin", "hamburg", "münchen", "munchen", "köln", "koln",
	"frankfurt", "stuttgart", "düsseldorf", "dusseldorf", "leipzig",
	"dortmund", "essen", "bremen", "dresden", "hannover",
	"nürnberg", "nurnberg",
}

// PercentOf returns hits as an integer percentage of total, 0 when total is
// zero.
func PercentOf(hits, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(total) * 100))
}

// WinProbability estimates the chance of winning the tender from its score,
// the number of missing required documents, the unanswered required
// questions, and the must-criteria fit percentage. Returns 0 only when the
// tender is absent; otherwise the result is clamped to [1, 99]. More missing
// documents or unanswered questions never raise the estimate; a higher
// must-criteria fit never lowers it.
func WinProbability(tender *models.Tender, missingDocCount int, answers []models.Answer, mustPct int) int {
	if tender == nil {
		return 0
	}

	unanswered := 0
	for _, a := range answers {
		if a.Required && strings.TrimSpace(a.Answer) == "" {
			unanswered++
		}
	}

	base := tender.Score - 4*missingDocCount - 3*unanswered
	if base < 0 {
		base = 0
	}
	mustBoost := int(math.Round(float64(mustPct) * 0.2))

	result := int(math.Round(float64(base+mustBoost)*0.9 + 5))
	if result < 1 {
		result = 1
	}
	if result > 99 {
		result = 99
	}
	return result
}

// RouteFeasibility estimates how workable the logistics are: full marks up
// to 50 km, a 0.4-point penalty per km beyond that, up to 10 bonus points
// for longer projects, and 8 points when the fleet description mentions a
// known depot city. Clamped to [0, 100].
func RouteFeasibility(distanceKm float64, projectDays int, fleetDescription string) int {
	score := 100.0
	if distanceKm > 50 {
		score -= (distanceKm - 50) * 0.4
	}

	durationBonus := float64(projectDays) / 30.0 * 2.0
	if durationBonus > 10 {
		durationBonus = 10
	}
	score += durationBonus

	fleet := strings.ToLower(fleetDescription)
	for _, city := range depotCities {
		if strings.Contains(fleet, city) {
			score += 8
			break
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// PriceRollup computes the linear cost roll-up: equipment and operating day
// rates times the rental days, round-trip transport, one-time setup, and the
// margin on top. No surcharge term in this pricing model.
func PriceRollup(input models.PricingInput) models.PriceBreakdown {
	days := float64(input.Days)

	equipment := input.EquipmentDailyRate * days
	transport := input.DistanceKm * 2 * input.TransportCostPerKm
	operation := (input.OperatorDailyRate + input.FuelDailyRate + input.MaintenanceDailyRate + input.InsuranceDailyRate) * days

	subtotal := equipment + transport + operation + input.SetupCost
	margin := subtotal * input.MarginPct / 100

	return models.PriceBreakdown{
		EquipmentCost: equipment,
		TransportCost: transport,
		OperationCost: operation,
		SetupCost:     input.SetupCost,
		Subtotal:      subtotal,
		Margin:        margin,
		Total:         math.Round(subtotal + margin),
	}
}
