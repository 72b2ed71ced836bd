package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"navpath/common"
	"navpath/detour"
)

type Config struct {
	Mesh               string           `yaml:"mesh"`
	Scale              float64          `yaml:"scale"`
	WalkableSlopeAngle float64          `yaml:"walkable_slope_angle"`
	Query              QueryConfig      `yaml:"query"`
	Log                common.LogConfig `yaml:"log"`
}

type QueryConfig struct {
	MaxNodes     int             `yaml:"max_nodes"`
	HalfExtents  [3]float64      `yaml:"half_extents"`
	AreaCosts    map[int]float64 `yaml:"area_costs"`
	IncludeFlags []string        `yaml:"include_flags"`
	ExcludeFlags []string        `yaml:"exclude_flags"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Reset()
	return cfg
}

func (cfg *Config) Reset() {
	cfg.Mesh = ""
	cfg.Scale = 1.0
	cfg.WalkableSlopeAngle = 45.0
	cfg.Query = QueryConfig{
		MaxNodes:    detour.DT_DEFAULT_MAX_NODES,
		HalfExtents: detour.DT_DEFAULT_HALF_EXTENTS,
		AreaCosts: map[int]float64{
			int(SAMPLE_POLYAREA_GROUND): 1.0,
			int(SAMPLE_POLYAREA_WATER):  10.0,
			int(SAMPLE_POLYAREA_ROAD):   1.0,
			int(SAMPLE_POLYAREA_DOOR):   1.0,
			int(SAMPLE_POLYAREA_GRASS):  2.0,
			int(SAMPLE_POLYAREA_JUMP):   1.5,
		},
		IncludeFlags: []string{DESC_SAMPLE_POLYFLAGS_ALL},
		ExcludeFlags: []string{DESC_SAMPLE_POLYFLAGS_DISABLED},
	}
	cfg.Log = common.DefaultLogConfig()
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Scale <= 0 {
		return errors.Errorf("scale must be positive, got %v", cfg.Scale)
	}
	if cfg.WalkableSlopeAngle < 0 || cfg.WalkableSlopeAngle > 90 {
		return errors.Errorf("walkable_slope_angle must be within [0, 90], got %v", cfg.WalkableSlopeAngle)
	}
	if cfg.Query.MaxNodes <= 0 {
		return errors.Errorf("query.max_nodes must be positive, got %d", cfg.Query.MaxNodes)
	}
	for i, v := range cfg.Query.HalfExtents {
		if v < 0 {
			return errors.Errorf("query.half_extents[%d] is negative", i)
		}
	}
	for area, cost := range cfg.Query.AreaCosts {
		if area < 0 || area >= detour.DT_MAX_AREAS {
			return errors.Errorf("query.area_costs: area %d out of range", area)
		}
		if cost < 0 {
			return errors.Errorf("query.area_costs: area %d has negative cost", area)
		}
	}
	if _, err := ParsePolyFlags(cfg.Query.IncludeFlags); err != nil {
		return errors.Wrap(err, "query.include_flags")
	}
	if _, err := ParsePolyFlags(cfg.Query.ExcludeFlags); err != nil {
		return errors.Wrap(err, "query.exclude_flags")
	}
	return nil
}

// Filter builds the query filter described by the configuration.
func (q *QueryConfig) Filter() (*detour.DtQueryFilter, error) {
	filter := detour.NewDtQueryFilter()
	include, err := ParsePolyFlags(q.IncludeFlags)
	if err != nil {
		return nil, err
	}
	exclude, err := ParsePolyFlags(q.ExcludeFlags)
	if err != nil {
		return nil, err
	}
	filter.SetIncludeFlags(include)
	filter.SetExcludeFlags(exclude)
	for area, cost := range q.AreaCosts {
		filter.SetAreaCost(area, cost)
	}
	return filter, nil
}

func (q *QueryConfig) Options(logger *zap.Logger) []detour.QueryOption {
	return []detour.QueryOption{
		detour.WithMaxNodes(q.MaxNodes),
		detour.WithHalfExtents(q.HalfExtents),
		detour.WithLogger(logger),
	}
}
