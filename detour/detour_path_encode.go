package detour

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"navpath/common"
	"navpath/common/message"
)

// Field numbers of the straight path wire format:
//
//	message StraightPath { repeated Waypoint waypoints = 1; }
//	message Waypoint     { repeated double pos = 1 [packed]; int32 transition = 2; }
const (
	pathFieldWaypoint       protowire.Number = 1
	waypointFieldPos        protowire.Number = 1
	waypointFieldTransition protowire.Number = 2
)

// StraightPath is the waypoint list produced by the funnel. The start
// position is not part of it; the last waypoint is the goal.
type StraightPath []Waypoint

// Length returns the travelled distance from start along the path.
func (p StraightPath) Length(start common.Vec3) float64 {
	total := 0.0
	prev := start
	for _, wp := range p {
		total += common.Vdist(prev, wp.Pos)
		prev = wp.Pos
	}
	return total
}

// Positions returns the waypoint positions only.
func (p StraightPath) Positions() []common.Vec3 {
	res := make([]common.Vec3, len(p))
	for i, wp := range p {
		res[i] = wp.Pos
	}
	return res
}

func (p StraightPath) ToBin() (res []byte) {
	var wp []byte
	for _, v := range p {
		wp = wp[:0]
		wp = message.AppendVec3(wp, waypointFieldPos, v.Pos)
		wp = message.AppendInt32(wp, waypointFieldTransition, int32(v.Transition))
		res = message.AppendMessage(res, pathFieldWaypoint, wp)
	}
	return res
}

// FromBin replaces p with the decoded path. Unknown fields are skipped.
func (p *StraightPath) FromBin(data []byte) error {
	var path StraightPath
	err := message.Walk(data, func(f message.Field) error {
		if f.Num != pathFieldWaypoint || f.Type != protowire.BytesType {
			return nil
		}
		wp, err := decodeWaypoint(f.Bytes)
		if err != nil {
			return errors.Wrapf(err, "waypoint %d", len(path))
		}
		path = append(path, wp)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "decode straight path")
	}
	*p = path
	return nil
}

func decodeWaypoint(data []byte) (wp Waypoint, err error) {
	hasPos := false
	err = message.Walk(data, func(f message.Field) (err error) {
		switch {
		case f.Num == waypointFieldPos && f.Type == protowire.BytesType:
			wp.Pos, err = message.ConsumeVec3(f.Bytes)
			hasPos = true
		case f.Num == waypointFieldTransition && f.Type == protowire.VarintType:
			wp.Transition = TransitionType(int32(f.Varint))
		}
		return err
	})
	if err != nil {
		return wp, err
	}
	if !hasPos {
		return wp, errors.New("missing position")
	}
	return wp, nil
}
