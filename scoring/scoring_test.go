package scoring

import (
	"testing"

	"tenderdesk-backend/models"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		hits, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
	}
	for _, tt := range tests {
		if got := PercentOf(tt.hits, tt.total); got != tt.want {
			t.Errorf("PercentOf(%d, %d): expected %d, got %d", tt.hits, tt.total, tt.want, got)
		}
	}
}

func TestWinProbabilityNilTender(t *testing.T) {
	if got := WinProbability(nil, 0, nil, 100); got != 0 {
		t.Errorf("Expected 0 for nil tender, got %d", got)
	}
}

func TestWinProbabilityRange(t *testing.T) {
	low := WinProbability(&models.Tender{Score: 0}, 10, nil, 0)
	if low != 5 {
		t.Errorf("Expected floor case to yield 5, got %d", low)
	}

	high := WinProbability(&models.Tender{Score: 100}, 0, nil, 100)
	if high < 1 || high > 99 {
		t.Errorf("Expected result within [1, 99], got %d", high)
	}
	if high != 99 {
		t.Errorf("Expected clamp to 99 for a perfect tender, got %d", high)
	}
}

func TestWinProbabilityPenalizesMissingDocs(t *testing.T) {
	tender := &models.Tender{Score: 60}
	withAll := WinProbability(tender, 0, nil, 50)
	withMissing := WinProbability(tender, 3, nil, 50)
	if withMissing >= withAll {
		t.Errorf("Expected missing documents to lower the estimate: %d vs %d", withMissing, withAll)
	}
}

func TestWinProbabilityPenalizesUnansweredRequired(t *testing.T) {
	tender := &models.Tender{Score: 60}
	answered := []models.Answer{
		{Question: "Referenzen?", Answer: "Drei Projekte", Required: true},
		{Question: "Kapazität?", Answer: "Ja", Required: false},
	}
	unanswered := []models.Answer{
		{Question: "Referenzen?", Answer: "   ", Required: true},
		{Question: "Kapazität?", Answer: "", Required: false}, // optional, no penalty
	}

	full := WinProbability(tender, 0, answered, 50)
	partial := WinProbability(tender, 0, unanswered, 50)
	if partial >= full {
		t.Errorf("Expected unanswered required questions to lower the estimate: %d vs %d", partial, full)
	}
	if full-partial != 3 {
		t.Errorf("Expected exactly one 3-point penalty scaled by 0.9, got difference %d", full-partial)
	}
}

func TestWinProbabilityMustPctBoost(t *testing.T) {
	tender := &models.Tender{Score: 50}
	without := WinProbability(tender, 0, nil, 0)
	with := WinProbability(tender, 0, nil, 100)
	if with <= without {
		t.Errorf("Expected must-criteria fit to raise the estimate: %d vs %d", with, without)
	}
}

func TestRouteFeasibilityShortDistanceFullMarks(t *testing.T) {
	got := RouteFeasibility(30, 0, "")
	if got != 100 {
		t.Errorf("Expected 100 for a short route, got %d", got)
	}
}

func TestRouteFeasibilityDistancePenalty(t *testing.T) {
	near := RouteFeasibility(60, 0, "")
	if near != 96 {
		t.Errorf("Expected 96 for 60 km, got %d", near)
	}
	far := RouteFeasibility(400, 0, "")
	if far != 0 {
		t.Errorf("Expected clamp to 0 for a 400 km route, got %d", far)
	}
}

func TestRouteFeasibilityDurationBonusCapped(t *testing.T) {
	// 300 days would earn 20 points; the bonus caps at 10
	got := RouteFeasibility(100, 300, "")
	if got != 90 {
		t.Errorf("Expected 80 base plus capped bonus of 10, got %d", got)
	}
}

func TestRouteFeasibilityDepotBonus(t *testing.T) {
	without := RouteFeasibility(100, 0, "5 Mobilkrane")
	with := RouteFeasibility(100, 0, "5 Mobilkrane am Standort Hamburg")
	if with-without != 8 {
		t.Errorf("Expected an 8-point depot bonus, got %d vs %d", with, without)
	}

	umlaut := RouteFeasibility(100, 0, "Depot in München")
	if umlaut-without != 8 {
		t.Errorf("Expected umlaut depot spelling to match, got %d vs %d", umlaut, without)
	}
}

func TestPriceRollup(t *testing.T) {
	input := models.PricingInput{
		EquipmentDailyRate:   1000,
		Days:                 10,
		DistanceKm:           100,
		TransportCostPerKm:   2.5,
		OperatorDailyRate:    400,
		FuelDailyRate:        150,
		MaintenanceDailyRate: 50,
		InsuranceDailyRate:   25,
		SetupCost:            2000,
		MarginPct:            15,
	}

	got := PriceRollup(input)
	if got.EquipmentCost != 10000 {
		t.Errorf("Expected equipment cost 10000, got %.2f", got.EquipmentCost)
	}
	if got.TransportCost != 500 {
		t.Errorf("Expected round-trip transport 500, got %.2f", got.TransportCost)
	}
	if got.OperationCost != 6250 {
		t.Errorf("Expected operation cost 6250, got %.2f", got.OperationCost)
	}
	if got.Subtotal != 18750 {
		t.Errorf("Expected subtotal 18750, got %.2f", got.Subtotal)
	}
	if got.Margin != 2812.5 {
		t.Errorf("Expected margin 2812.5, got %.2f", got.Margin)
	}
	if got.Total != 21563 {
		t.Errorf("Expected rounded total 21563, got %.2f", got.Total)
	}
}

func TestPriceRollupZeroInput(t *testing.T) {
	got := PriceRollup(models.PricingInput{})
	if got.Total != 0 || got.Subtotal != 0 {
		t.Errorf("Expected zero totals for zero input, got %+v", got)
	}
}
