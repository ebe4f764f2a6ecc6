package mcp

import (
	"context"
	"fmt"
	"strings"
)

// Reference runs the tool a guide names for query and renders the result as
// reference lines for the system prompt. An empty tool yields "".
func (s *Service) Reference(ctx context.Context, tool, query string) (string, error) {
	switch tool {
	case "":
		return "", nil

	case ToolTouristSpots:
		res, err := s.SearchTouristSpots(ctx, TouristSpotInput{Keyword: query, Limit: DefaultSpotLimit})
		if err != nil {
			return "", err
		}
		if len(res.Spots) == 0 {
			// nothing named in the question: offer the general list
			if res, err = s.SearchTouristSpots(ctx, TouristSpotInput{Limit: DefaultSpotLimit}); err != nil {
				return "", err
			}
		}
		lines := make([]string, 0, len(res.Spots))
		for _, spot := range res.Spots {
			lines = append(lines, spot.Name+" - "+spot.Description)
		}
		return strings.Join(lines, "\n"), nil

	case ToolTransportationInfo:
		stopType := StopTrain
		if strings.Contains(query, "バス") {
			stopType = StopBus
		}
		res, err := s.TransportationInfo(ctx, TransportationInput{Type: stopType})
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(res.Stops))
		for _, stop := range res.Stops {
			lines = append(lines, fmt.Sprintf("%s(%s)", stop.Name, stop.Type))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTool, tool)
}
