// Package domain contains core domain types for the DraftLab service.
package domain

// RoomDirections lists the compass values a room's direction field may take.
var RoomDirections = []string{
	"North", "South", "East", "West",
	"Northeast", "Northwest", "Southeast", "Southwest",
	"Center",
}

// Blueprint is the structured floor-plan document produced from a model
// completion. It is well-formed enough to render; it is not validated against
// physical or code constraints.
type Blueprint struct {
	BuildingInfo BuildingInfo `json:"building_info"`
	FloorPlans   []FloorPlan  `json:"floor_plans"`
}

// BuildingInfo echoes the requirements the blueprint was generated for.
type BuildingInfo struct {
	Type        string  `json:"type"`
	TotalArea   float64 `json:"total_area"`
	Floors      int     `json:"floors"`
	Accessible  bool    `json:"accessible"`
	Occupancy   string  `json:"occupancy,omitempty"`
	BudgetLevel string  `json:"budget_level,omitempty"`
}

// FloorPlan is one floor of a blueprint.
type FloorPlan struct {
	FloorNumber int     `json:"floor_number"`
	Area        float64 `json:"area"`
	Rooms       []Room  `json:"rooms"`
}

// Room is a single room on a floor.
type Room struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Dimensions Dimensions `json:"dimensions"`
	Position   Position   `json:"position"`
	Direction  string     `json:"direction"`
	Features   []string   `json:"features"`
	Color      string     `json:"color"`
}

// Dimensions holds a room's size in meters and square meters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Area   float64 `json:"area"`
}

// Position is a room's placement on the floor grid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Normalize fills derived fields the model may omit: floor numbers, room
// areas, directions computed from positions, default colors, and non-nil
// feature lists.
func (b *Blueprint) Normalize() {
	for i := range b.FloorPlans {
		fp := &b.FloorPlans[i]
		if fp.FloorNumber == 0 {
			fp.FloorNumber = i + 1
		}
		var roomArea float64
		for j := range fp.Rooms {
			room := &fp.Rooms[j]
			if room.Dimensions.Area == 0 {
				room.Dimensions.Area = room.Dimensions.Width * room.Dimensions.Length
			}
			if room.Direction == "" {
				room.Direction = DirectionFor(room.Position)
			}
			if room.Features == nil {
				room.Features = []string{}
			}
			if room.Color == "" {
				room.Color = DefaultRoomColor(room.Type)
			}
			roomArea += room.Dimensions.Area
		}
		if fp.Area == 0 {
			fp.Area = roomArea
		}
	}
}

// DirectionFor derives a compass direction from a room's position. Corners
// win over cardinal bands, and the west/east bands win over north/south.
func DirectionFor(p Position) string {
	switch {
	case p.X < -5 && p.Y > 5:
		return "Northwest"
	case p.X > 5 && p.Y > 5:
		return "Northeast"
	case p.X < -5 && p.Y < -5:
		return "Southwest"
	case p.X > 5 && p.Y < -5:
		return "Southeast"
	case p.X < -2:
		return "West"
	case p.X > 2:
		return "East"
	case p.Y > 2:
		return "North"
	case p.Y < -2:
		return "South"
	default:
		return "Center"
	}
}

var roomColors = map[string]string{
	"living":     "#e3f2fd",
	"bedroom":    "#f3e5f5",
	"kitchen":    "#e8f5e8",
	"bathroom":   "#fff3e0",
	"office":     "#e1f5fe",
	"dining":     "#fce4ec",
	"storage":    "#f5f5f5",
	"hallway":    "#f9f9f9",
	"lobby":      "#e0f2f1",
	"conference": "#fff8e1",
	"medical":    "#e8eaf6",
	"lab":        "#f1f8e9",
	"ward":       "#fafafa",
}

// DefaultRoomColor returns the render color for a room type.
func DefaultRoomColor(roomType string) string {
	if c, ok := roomColors[roomType]; ok {
		return c
	}
	return "#f5f5f5"
}
