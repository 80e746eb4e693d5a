// Package prompt renders the instruction text sent to the blueprint model.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ashureev/draftlab/internal/domain"
)

const systemPreamble = `You are an expert architect and building designer specializing in creating detailed floor plans.
Your role is to generate precise, code-compliant building layouts in JSON format.

CORE PRINCIPLES:
1. Follow building codes (IBC, ADA compliance)
2. Ensure logical flow and functionality
3. Optimize space utilization
4. Consider safety (egress, fire exits)
5. Include proper utilities and structural elements

DIMENSIONAL STANDARDS:
- Residential bedroom: min 7 sq.m, min width 2.4m
- Bathroom: min 3 sq.m, accessible 5 sq.m
- Kitchen: min 6 sq.m for functionality
- Corridors: min 1.2m, recommended 1.5m
- Doors: standard 0.9m, accessible 1.0m
- Ceiling heights: residential 2.4m, commercial 3.0m+
`

const hospitalNeeds = `- Patient rooms: min 12 sq.m single, 18 sq.m double
- Corridors: min 2.4m wide for bed access
- Nurse stations: central visibility
- Emergency exits: multiple egress paths
- Specialized rooms: OR, ICU, pharmacy, lab
- Utility rooms: medical gas, electrical, housekeeping
- Infection control: proper ventilation zones`

const residentialNeeds = `- Bedrooms: privacy and natural light
- Kitchen: work triangle efficiency
- Living areas: social interaction spaces
- Storage: minimum 10% of floor area
- Bathrooms: proper ventilation
- Entry: transition space from exterior
- Circulation: minimize corridor space`

const officeNeeds = `- Open office: 6-10 sq.m per workstation
- Meeting rooms: various sizes for teams
- Break rooms: social and food prep areas
- Reception: welcoming entrance
- Storage: filing and supplies
- Server room: climate controlled
- Accessibility: ADA compliant throughout`

const educationalNeeds = `- Classrooms: 2 sq.m per student minimum
- Wide corridors: 3m+ for student flow
- Emergency exits: maximum 45m travel distance
- Specialized rooms: labs, library, gym
- Administrative offices: principal, counselors
- Accessibility: full ADA compliance
- Safety: secure entrances, sight lines`

var roomSuggestions = map[string][]string{
	"residential_house": {"living_room", "kitchen", "bedrooms", "bathrooms", "dining_room"},
	"hospital":          {"reception", "waiting_area", "examination_rooms", "wards", "operating_theater", "pharmacy", "laboratory"},
	"office_building":   {"reception", "offices", "conference_rooms", "break_room", "storage"},
	"school":            {"classrooms", "library", "cafeteria", "gymnasium", "administration_office"},
	"restaurant":        {"dining_area", "kitchen", "storage", "restrooms", "bar_area"},
	"hotel":             {"lobby", "guest_rooms", "restaurant", "conference_rooms", "fitness_center"},
}

// Initial renders the prompt for a first blueprint generation. It fails with
// a ValidationError when the requirements are malformed or name an
// unsupported building type.
func Initial(req domain.BuildingRequirements) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(systemPreamble)
	fmt.Fprintf(&b, "\nTASK: Create a detailed architectural blueprint in JSON format for a %s building.\n\n", req.BuildingType)
	fmt.Fprintf(&b, "Requirements:\n")
	fmt.Fprintf(&b, "- Building Type: %s\n", req.BuildingType)
	fmt.Fprintf(&b, "- Total Area: %g square meters\n", req.TotalArea)
	fmt.Fprintf(&b, "- Number of Floors: %d\n", req.Floors)
	fmt.Fprintf(&b, "- Accessibility: %s\n", accessibility(req.Accessible))
	fmt.Fprintf(&b, "- Occupancy: %s\n", orNoPreference(req.Occupancy))
	fmt.Fprintf(&b, "- Budget Level: %s\n", orNoPreference(req.BudgetLevel))
	fmt.Fprintf(&b, "- Design Goals: %s\n\n", orNoPreference(req.Goals))
	fmt.Fprintf(&b, "Suggested rooms for %s: %s\n\n", req.BuildingType, strings.Join(suggestionsFor(req.BuildingType), ", "))
	fmt.Fprintf(&b, "SPECIFIC NEEDS FOR %s:\n%s\n\n", strings.ToUpper(req.BuildingType), typeRequirements(req.BuildingType))
	b.WriteString(schemaDirective(req))
	return b.String(), nil
}

// Iteration renders the prompt that asks the model to edit an existing
// blueprint according to user feedback.
func Iteration(bp *domain.Blueprint, feedback string) (string, error) {
	doc, err := blueprintJSON(bp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
TASK: Modify this architectural blueprint based on user feedback. Maintain the multi-floor structure and room directions.

Current Blueprint:
%s

User Feedback:
%s

IMPORTANT:
1. Keep the same number of floors as in the original blueprint
2. Each room MUST have a "direction" field with one of: %s
3. Update room positions, dimensions, and colors as needed based on feedback
4. Maintain logical room placement and avoid overlaps
5. Keep the same JSON structure

Return only the updated JSON blueprint, no additional text.
`, systemPreamble, doc, feedback, directionList()), nil
}

// Optimization renders the prompt that asks the model to re-optimize an
// existing blueprint for a stated goal.
func Optimization(bp *domain.Blueprint, goal string) (string, error) {
	doc, err := blueprintJSON(bp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s
TASK: Optimize this architectural blueprint for the stated goal while maintaining structure and room directions.

Current Blueprint:
%s

Optimization Goal:
- %s

OPTIMIZATION FOCUS AREAS:
1. Space efficiency - eliminate wasted areas
2. Traffic flow - optimize circulation patterns
3. Natural light - maximize window placement
4. Cost efficiency - reduce complex shapes
5. Functionality - improve room relationships
6. Code compliance - ensure all requirements met

IMPORTANT:
1. Keep the same number of floors
2. Each room MUST have a "direction" field with one of: %s
3. Optimize room sizes, positions, and features based on the goal
4. Maintain the same JSON structure

Return only the optimized JSON blueprint, no additional text.
`, systemPreamble, doc, goal, directionList()), nil
}

func schemaDirective(req domain.BuildingRequirements) string {
	perFloor := req.TotalArea / float64(req.Floors)
	return fmt.Sprintf(`Return a JSON blueprint with this exact structure and include ALL %d floors:
{
  "building_info": {
    "type": "%s",
    "total_area": %g,
    "floors": %d,
    "accessible": %t
  },
  "floor_plans": [
    {
      "floor_number": 1,
      "area": %g,
      "rooms": [
        {
          "name": "Room Name",
          "type": "room_type",
          "dimensions": {"width": 6.0, "length": 8.0, "area": 48.0},
          "position": {"x": 0, "y": 0},
          "direction": "%s",
          "features": ["feature1", "feature2"],
          "color": "#hexcolor"
        }
      ]
    }
  ]
}

IMPORTANT:
1. Include exactly %d floor plans in the floor_plans array
2. Each room MUST have a "direction" field with one of: %s
3. Distribute the total area (%g sq m) across all floors
4. Use appropriate room types and colors for %s
5. Position rooms logically and ensure they don't overlap

Return only the JSON, no additional text.
`,
		req.Floors, req.BuildingType, req.TotalArea, req.Floors, req.Accessible,
		perFloor, directionPattern(), req.Floors, directionList(), req.TotalArea, req.BuildingType)
}

func blueprintJSON(bp *domain.Blueprint) (string, error) {
	if bp == nil {
		return "", &domain.ValidationError{Field: "blueprint", Reason: "missing"}
	}
	if !domain.IsSupportedBuildingType(bp.BuildingInfo.Type) {
		return "", &domain.ValidationError{Field: "building_type", Reason: fmt.Sprintf("unsupported building type %q", bp.BuildingInfo.Type)}
	}
	raw, err := json.MarshalIndent(bp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode blueprint: %w", err)
	}
	return string(raw), nil
}

func suggestionsFor(buildingType string) []string {
	if rooms, ok := roomSuggestions[buildingType]; ok {
		return rooms
	}
	return []string{"main_area", "secondary_areas", "utilities"}
}

func typeRequirements(buildingType string) string {
	switch buildingType {
	case "hospital", "clinic":
		return hospitalNeeds
	case "residential_house", "apartment_complex":
		return residentialNeeds
	case "office_building":
		return officeNeeds
	case "school":
		return educationalNeeds
	default:
		return "Standard commercial requirements apply."
	}
}

func accessibility(accessible bool) string {
	if accessible {
		return "fully accessible (ADA compliant: 1.0m doors, 5 sq.m bathrooms, step-free circulation)"
	}
	return "standard"
}

func orNoPreference(s string) string {
	if s == "" {
		return "no preference"
	}
	return s
}

func directionList() string {
	return strings.Join(domain.RoomDirections, ", ")
}

func directionPattern() string {
	return strings.Join(domain.RoomDirections, "|")
}
