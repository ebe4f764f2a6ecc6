// Package mcp is the tool layer of the dev backend: a fixed set of named
// tools over Kanazawa open data, executed with cached results.
package mcp

// Tool names.
const (
	ToolGarbageSchedule    = "get_garbage_schedule"
	ToolTouristSpots       = "search_tourist_spots"
	ToolTransportationInfo = "get_transportation_info"
)

// Stop types accepted by get_transportation_info.
const (
	StopBus   = "bus_stop"
	StopTrain = "train_station"
)

// DefaultSpotLimit is used when search_tourist_spots gets no limit.
const DefaultSpotLimit = 5

// Tool describes one callable tool.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// GarbageScheduleInput are the parameters of get_garbage_schedule.
type GarbageScheduleInput struct {
	AreaCode string `json:"area_code"`
	Date     string `json:"date"`
}

// TouristSpotInput are the parameters of search_tourist_spots.
type TouristSpotInput struct {
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit"`
}

// TransportationInput are the parameters of get_transportation_info.
type TransportationInput struct {
	Type   string         `json:"type"`
	Filter map[string]any `json:"filter,omitempty"`
}

func objectSchema(title string, required []string, props map[string]any) map[string]any {
	return map[string]any{
		"title":      title,
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func defaultTools() []Tool {
	return []Tool{
		{
			Name:        ToolGarbageSchedule,
			Description: "地区コードと日付で収集ごみ種別を返す",
			InputSchema: objectSchema("GarbageScheduleInput", []string{"area_code", "date"}, map[string]any{
				"area_code": map[string]any{"title": "Area Code", "type": "string"},
				"date":      map[string]any{"title": "Date", "type": "string", "format": "date"},
			}),
		},
		{
			Name:        ToolTouristSpots,
			Description: "キーワードで観光スポットを検索",
			InputSchema: objectSchema("TouristSpotInput", []string{"keyword"}, map[string]any{
				"keyword": map[string]any{"title": "Keyword", "type": "string"},
				"limit":   map[string]any{"title": "Limit", "type": "integer", "default": DefaultSpotLimit},
			}),
		},
		{
			Name:        ToolTransportationInfo,
			Description: "交通情報を取得（バス停、駅など）",
			InputSchema: objectSchema("TransportationInput", []string{"type"}, map[string]any{
				"type":   map[string]any{"title": "Type", "type": "string", "enum": []string{StopBus, StopTrain}},
				"filter": map[string]any{"title": "Filter", "type": "object"},
			}),
		},
	}
}
