package domain

import "fmt"

// Budget levels accepted in building requirements.
const (
	BudgetEconomy  = "economy"
	BudgetStandard = "standard"
	BudgetPremium  = "premium"
)

// BuildingType pairs a building-type identifier with its display label.
type BuildingType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// BuildingTypes lists the supported building categories in canonical order.
var BuildingTypes = []BuildingType{
	{ID: "residential_house", Label: "Residential House"},
	{ID: "apartment_complex", Label: "Apartment Complex"},
	{ID: "office_building", Label: "Office Building"},
	{ID: "retail_store", Label: "Retail Store"},
	{ID: "restaurant", Label: "Restaurant"},
	{ID: "warehouse", Label: "Warehouse"},
	{ID: "school", Label: "School"},
	{ID: "hospital", Label: "Hospital"},
	{ID: "clinic", Label: "Clinic"},
	{ID: "hotel", Label: "Hotel"},
	{ID: "shopping_mall", Label: "Shopping Mall"},
	{ID: "gym_fitness_center", Label: "Gym & Fitness Center"},
	{ID: "library", Label: "Library"},
	{ID: "community_center", Label: "Community Center"},
	{ID: "industrial_facility", Label: "Industrial Facility"},
}

// IsSupportedBuildingType reports whether id names a supported building type.
func IsSupportedBuildingType(id string) bool {
	for _, bt := range BuildingTypes {
		if bt.ID == id {
			return true
		}
	}
	return false
}

// BuildingRequirements describes the building a client wants designed.
// Immutable once submitted for a generation request.
type BuildingRequirements struct {
	BuildingType string  `json:"building_type"`
	TotalArea    float64 `json:"total_area"`
	Floors       int     `json:"floors"`
	Accessible   bool    `json:"accessible"`
	Goals        string  `json:"goals,omitempty"`
	Occupancy    string  `json:"occupancy,omitempty"`
	BudgetLevel  string  `json:"budget_level,omitempty"`
}

// Validate returns a ValidationError describing the first problem found.
func (r *BuildingRequirements) Validate() error {
	if !IsSupportedBuildingType(r.BuildingType) {
		return &ValidationError{Field: "building_type", Reason: fmt.Sprintf("unsupported building type %q", r.BuildingType)}
	}
	if r.TotalArea <= 0 {
		return &ValidationError{Field: "total_area", Reason: "must be a positive number"}
	}
	if r.Floors < 1 {
		return &ValidationError{Field: "floors", Reason: "must be at least 1"}
	}
	switch r.BudgetLevel {
	case "", BudgetEconomy, BudgetStandard, BudgetPremium:
	default:
		return &ValidationError{Field: "budget_level", Reason: fmt.Sprintf("must be %q, %q or %q", BudgetEconomy, BudgetStandard, BudgetPremium)}
	}
	return nil
}
