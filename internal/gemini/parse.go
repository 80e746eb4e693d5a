package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ashureev/draftlab/internal/domain"
)

// parseBlueprint turns a raw model completion into a normalized Blueprint.
// It never returns a partially populated document: any schema violation is a
// ParseError.
func parseBlueprint(raw string) (*domain.Blueprint, error) {
	text, err := stripFence(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, &ParseError{Reason: "empty completion"}
	}

	var bp domain.Blueprint
	if err := json.Unmarshal([]byte(text), &bp); err != nil {
		return nil, &ParseError{Reason: "completion is not valid blueprint JSON", Err: err}
	}
	if err := validateBlueprint(&bp); err != nil {
		return nil, err
	}
	bp.Normalize()
	return &bp, nil
}

// stripFence extracts the body of a Markdown code fence when the completion
// wraps the JSON in one. Prose around the fence is discarded.
func stripFence(text string) (string, error) {
	const fence = "```"
	idx := strings.Index(text, fence)
	if idx == -1 {
		return text, nil
	}
	start := idx + len(fence)
	if strings.HasPrefix(text[start:], "json") {
		start += len("json")
	}
	end := strings.Index(text[start:], fence)
	if end == -1 {
		return "", &ParseError{Reason: "unterminated code fence in completion"}
	}
	return strings.TrimSpace(text[start : start+end]), nil
}

func validateBlueprint(bp *domain.Blueprint) error {
	if len(bp.FloorPlans) == 0 {
		return &ParseError{Reason: "blueprint has no floor plans"}
	}
	for i := range bp.FloorPlans {
		for j, room := range bp.FloorPlans[i].Rooms {
			if strings.TrimSpace(room.Name) == "" {
				return &ParseError{Reason: fmt.Sprintf("floor %d room %d has no name", i+1, j+1)}
			}
			if room.Dimensions.Width <= 0 || room.Dimensions.Length <= 0 {
				return &ParseError{Reason: fmt.Sprintf("room %q has non-positive dimensions", room.Name)}
			}
		}
	}
	return nil
}
