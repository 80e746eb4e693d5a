package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/ashureev/draftlab/internal/domain"
)

func TestInitialMentionsEverySupportedType(t *testing.T) {
	t.Parallel()

	for _, bt := range domain.BuildingTypes {
		req := domain.BuildingRequirements{
			BuildingType: bt.ID,
			TotalArea:    420.5,
			Floors:       3,
		}
		out, err := Initial(req)
		if err != nil {
			t.Fatalf("Initial(%s) failed: %v", bt.ID, err)
		}
		if !strings.Contains(out, bt.ID) {
			t.Fatalf("prompt for %s does not contain the type identifier", bt.ID)
		}
		if !strings.Contains(out, "Number of Floors: 3") {
			t.Fatalf("prompt for %s does not state the floor count", bt.ID)
		}
		if !strings.Contains(out, "420.5 square meters") {
			t.Fatalf("prompt for %s does not state the total area", bt.ID)
		}
		if !strings.Contains(out, "Return only the JSON, no additional text.") {
			t.Fatalf("prompt for %s is missing the response format directive", bt.ID)
		}
	}
}

func TestInitialRendersMissingOptionalsAsNoPreference(t *testing.T) {
	t.Parallel()

	req := domain.BuildingRequirements{BuildingType: "warehouse", TotalArea: 2000, Floors: 1}
	out, err := Initial(req)
	if err != nil {
		t.Fatalf("Initial failed: %v", err)
	}
	for _, line := range []string{
		"- Occupancy: no preference",
		"- Budget Level: no preference",
		"- Design Goals: no preference",
		"- Accessibility: standard",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("expected %q in prompt, got:\n%s", line, out)
		}
	}
}

func TestInitialRendersProvidedOptionals(t *testing.T) {
	t.Parallel()

	req := domain.BuildingRequirements{
		BuildingType: "hotel",
		TotalArea:    3000,
		Floors:       5,
		Accessible:   true,
		Goals:        "maximize sea view rooms",
		Occupancy:    "120 guests",
		BudgetLevel:  domain.BudgetPremium,
	}
	out, err := Initial(req)
	if err != nil {
		t.Fatalf("Initial failed: %v", err)
	}
	for _, want := range []string{
		"- Occupancy: 120 guests",
		"- Budget Level: premium",
		"- Design Goals: maximize sea view rooms",
		"ADA compliant",
		"lobby, guest_rooms, restaurant",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in prompt", want)
		}
	}
}

func TestInitialRejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	req := domain.BuildingRequirements{BuildingType: "treehouse", TotalArea: 30, Floors: 1}
	_, err := Initial(req)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
}

func testBlueprint() *domain.Blueprint {
	return &domain.Blueprint{
		BuildingInfo: domain.BuildingInfo{Type: "residential_house", TotalArea: 150, Floors: 1},
		FloorPlans: []domain.FloorPlan{
			{
				FloorNumber: 1,
				Area:        150,
				Rooms: []domain.Room{
					{
						Name:       "Living Room",
						Type:       "living",
						Dimensions: domain.Dimensions{Width: 6, Length: 8, Area: 48},
						Direction:  "North",
						Features:   []string{},
						Color:      "#e3f2fd",
					},
				},
			},
		},
	}
}

func TestIterationEmbedsBlueprintAndFeedback(t *testing.T) {
	t.Parallel()

	out, err := Iteration(testBlueprint(), "add a second bathroom")
	if err != nil {
		t.Fatalf("Iteration failed: %v", err)
	}
	if !strings.Contains(out, `"name": "Living Room"`) {
		t.Fatal("prior blueprint JSON not embedded in iteration prompt")
	}
	if !strings.Contains(out, "add a second bathroom") {
		t.Fatal("feedback text not embedded in iteration prompt")
	}
	if !strings.Contains(out, "Keep the same number of floors") {
		t.Fatal("iteration prompt is missing the floor-preservation rule")
	}
}

func TestOptimizationEmbedsGoalAndFocusAreas(t *testing.T) {
	t.Parallel()

	out, err := Optimization(testBlueprint(), "maximize natural light")
	if err != nil {
		t.Fatalf("Optimization failed: %v", err)
	}
	if !strings.Contains(out, "- maximize natural light") {
		t.Fatal("goal not embedded in optimization prompt")
	}
	if !strings.Contains(out, "Natural light - maximize window placement") {
		t.Fatal("focus areas missing from optimization prompt")
	}
	if !strings.Contains(out, `"floor_plans"`) {
		t.Fatal("prior blueprint JSON not embedded in optimization prompt")
	}
}

func TestIterationRejectsMissingOrForeignBlueprint(t *testing.T) {
	t.Parallel()

	var verr *domain.ValidationError

	if _, err := Iteration(nil, "feedback"); !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError for nil blueprint, got %v", err)
	}

	foreign := testBlueprint()
	foreign.BuildingInfo.Type = "space_station"
	if _, err := Optimization(foreign, "goal"); !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError for unsupported type, got %v", err)
	}
}
