package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL matches how long a tool result stays fresh.
const DefaultCacheTTL = time.Hour

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrInvalidParams = errors.New("invalid tool parameters")
)

// GarbageResult is returned by get_garbage_schedule.
type GarbageResult struct {
	GarbageTypes []string `json:"garbage_types"`
	AreaCode     string   `json:"area_code"`
	Date         string   `json:"date"`
}

// SpotResult is returned by search_tourist_spots.
type SpotResult struct {
	Spots []Spot `json:"spots"`
}

// StopResult is returned by get_transportation_info.
type StopResult struct {
	Stops []Stop `json:"stops"`
}

// Option customizes a Service.
type Option func(*Service)

// WithCacheTTL overrides DefaultCacheTTL. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock overrides the cache clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service executes tools against a Dataset.
type Service struct {
	tools  []Tool
	byName map[string]Tool
	data   Dataset

	ttl    time.Duration
	now    func() time.Time
	cache  *resultCache
	group  singleflight.Group
	logger *zap.Logger
}

// NewService builds the tool layer over data.
func NewService(data Dataset, opts ...Option) *Service {
	s := &Service{
		tools:  defaultTools(),
		data:   data,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.byName = make(map[string]Tool, len(s.tools))
	for _, tool := range s.tools {
		s.byName[tool.Name] = tool
	}
	s.cache = newResultCache(s.ttl, s.now)
	return s
}

// Tools lists the available tools.
func (s *Service) Tools() []Tool {
	return append([]Tool(nil), s.tools...)
}

// Execute runs a tool by name. Results are cached per tool and params.
func (s *Service) Execute(ctx context.Context, name string, params map[string]any) (any, error) {
	if _, ok := s.byName[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]any{}
	}
	// encoding/json sorts map keys, so equal params give equal keys.
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	key := "mcp:" + name + ":" + string(raw)

	if cached, ok := s.cache.get(key); ok {
		s.logger.Debug("tool cache hit", zap.String("tool", name))
		return cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.run(name, raw)
		if err != nil {
			return nil, err
		}
		s.cache.set(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tool executed", zap.String("tool", name))
	return result, nil
}

// SearchTouristSpots runs search_tourist_spots.
func (s *Service) SearchTouristSpots(ctx context.Context, in TouristSpotInput) (SpotResult, error) {
	res, err := s.Execute(ctx, ToolTouristSpots, map[string]any{"keyword": in.Keyword, "limit": in.Limit})
	if err != nil {
		return SpotResult{}, err
	}
	return res.(SpotResult), nil
}

// TransportationInfo runs get_transportation_info.
func (s *Service) TransportationInfo(ctx context.Context, in TransportationInput) (StopResult, error) {
	params := map[string]any{"type": in.Type}
	if len(in.Filter) > 0 {
		params["filter"] = in.Filter
	}
	res, err := s.Execute(ctx, ToolTransportationInfo, params)
	if err != nil {
		return StopResult{}, err
	}
	return res.(StopResult), nil
}

// GarbageSchedule runs get_garbage_schedule.
func (s *Service) GarbageSchedule(ctx context.Context, in GarbageScheduleInput) (GarbageResult, error) {
	res, err := s.Execute(ctx, ToolGarbageSchedule, map[string]any{"area_code": in.AreaCode, "date": in.Date})
	if err != nil {
		return GarbageResult{}, err
	}
	return res.(GarbageResult), nil
}

func (s *Service) run(name string, raw []byte) (any, error) {
	switch name {
	case ToolTouristSpots:
		var in TouristSpotInput
		if err := decodeParams(raw, &in); err != nil {
			return nil, err
		}
		return s.searchSpots(in), nil

	case ToolTransportationInfo:
		var in TransportationInput
		if err := decodeParams(raw, &in); err != nil {
			return nil, err
		}
		if in.Type == "" {
			return nil, fmt.Errorf("%w: type is required", ErrInvalidParams)
		}
		return s.findStops(in), nil

	case ToolGarbageSchedule:
		var in GarbageScheduleInput
		if err := decodeParams(raw, &in); err != nil {
			return nil, err
		}
		if in.AreaCode == "" {
			return nil, fmt.Errorf("%w: area_code is required", ErrInvalidParams)
		}
		day, err := time.Parse(time.DateOnly, in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidParams)
		}
		return s.collections(in.AreaCode, day.Format(time.DateOnly)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

func decodeParams(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// searchSpots matches spots whose name or description contains the keyword,
// or whose name appears in it, so a whole question also finds spots.
func (s *Service) searchSpots(in TouristSpotInput) SpotResult {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultSpotLimit
	}
	keyword := strings.TrimSpace(in.Keyword)

	spots := make([]Spot, 0, limit)
	for _, spot := range s.data.Spots {
		if len(spots) == limit {
			break
		}
		if keyword == "" ||
			strings.Contains(spot.Name, keyword) ||
			strings.Contains(spot.Description, keyword) ||
			strings.Contains(keyword, spot.Name) {
			spots = append(spots, spot)
		}
	}
	return SpotResult{Spots: spots}
}

func (s *Service) findStops(in TransportationInput) StopResult {
	nameFilter, _ := in.Filter["name"].(string)

	stops := make([]Stop, 0)
	for _, stop := range s.data.Stops {
		if stop.Type != in.Type {
			continue
		}
		if nameFilter != "" && !strings.Contains(stop.Name, nameFilter) {
			continue
		}
		stops = append(stops, stop)
	}
	return StopResult{Stops: stops}
}

func (s *Service) collections(area, date string) GarbageResult {
	types := make([]string, 0)
	for _, c := range s.data.Collections {
		if c.AreaCode == area && c.Date == date {
			types = append(types, c.GarbageType)
		}
	}
	return GarbageResult{GarbageTypes: types, AreaCode: area, Date: date}
}
