package config

import (
	"strings"

	"github.com/pkg/errors"
)

type SamplePolyFlags = uint16

const (
	SAMPLE_POLYFLAGS_WALK     SamplePolyFlags = 0x01   // Ability to walk (ground, grass, road)
	SAMPLE_POLYFLAGS_SWIM     SamplePolyFlags = 0x02   // Ability to swim (water).
	SAMPLE_POLYFLAGS_DOOR     SamplePolyFlags = 0x04   // Ability to move through doors.
	SAMPLE_POLYFLAGS_JUMP     SamplePolyFlags = 0x08   // Ability to jump.
	SAMPLE_POLYFLAGS_DISABLED SamplePolyFlags = 0x10   // Disabled triangle
	SAMPLE_POLYFLAGS_ALL      SamplePolyFlags = 0xffff // All abilities.

	DESC_SAMPLE_POLYFLAGS_WALK     = "Walk"
	DESC_SAMPLE_POLYFLAGS_SWIM     = "Swim"
	DESC_SAMPLE_POLYFLAGS_DOOR     = "Door"
	DESC_SAMPLE_POLYFLAGS_JUMP     = "Jump"
	DESC_SAMPLE_POLYFLAGS_DISABLED = "Disabled"
	DESC_SAMPLE_POLYFLAGS_ALL      = "All"
)

var polyFlagsByDesc = map[string]SamplePolyFlags{
	strings.ToLower(DESC_SAMPLE_POLYFLAGS_WALK):     SAMPLE_POLYFLAGS_WALK,
	strings.ToLower(DESC_SAMPLE_POLYFLAGS_SWIM):     SAMPLE_POLYFLAGS_SWIM,
	strings.ToLower(DESC_SAMPLE_POLYFLAGS_DOOR):     SAMPLE_POLYFLAGS_DOOR,
	strings.ToLower(DESC_SAMPLE_POLYFLAGS_JUMP):     SAMPLE_POLYFLAGS_JUMP,
	strings.ToLower(DESC_SAMPLE_POLYFLAGS_DISABLED): SAMPLE_POLYFLAGS_DISABLED,
	strings.ToLower(DESC_SAMPLE_POLYFLAGS_ALL):      SAMPLE_POLYFLAGS_ALL,
}

// ParsePolyFlags ORs together the flags named in descs, ignoring case.
func ParsePolyFlags(descs []string) (SamplePolyFlags, error) {
	var flags SamplePolyFlags
	for _, desc := range descs {
		f, ok := polyFlagsByDesc[strings.ToLower(strings.TrimSpace(desc))]
		if !ok {
			return 0, errors.Errorf("unknown triangle flag %q", desc)
		}
		flags |= f
	}
	return flags, nil
}

type SamplePolyAreas = uint8

const (
	SAMPLE_POLYAREA_GROUND SamplePolyAreas = iota
	SAMPLE_POLYAREA_WATER
	SAMPLE_POLYAREA_ROAD
	SAMPLE_POLYAREA_DOOR
	SAMPLE_POLYAREA_GRASS
	SAMPLE_POLYAREA_JUMP
)
