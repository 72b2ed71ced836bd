package detour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"navpath/common"
	"navpath/common/message"
)

func TestStraightPathBinary(t *testing.T) {
	path := StraightPath{
		{Pos: common.Vec3{1, 2, 3}, Transition: TransitionWalk},
		{Pos: common.Vec3{-4.5, 0, 1e-9}, Transition: TransitionJump},
		{Pos: common.Vec3{7, 7, 7}, Transition: TransitionSwim},
	}

	var got StraightPath
	require.NoError(t, got.FromBin(path.ToBin()))
	assert.Equal(t, path, got)
}

func TestStraightPathBinaryEmpty(t *testing.T) {
	var path StraightPath
	assert.Empty(t, path.ToBin())

	got := StraightPath{{Pos: common.Vec3{1, 1, 1}}}
	require.NoError(t, got.FromBin(nil))
	assert.Empty(t, got)
}

func TestStraightPathBinarySkipsUnknownFields(t *testing.T) {
	path := StraightPath{{Pos: common.Vec3{1, 2, 3}, Transition: TransitionClimb}}

	var data []byte
	data = protowire.AppendTag(data, 9, protowire.VarintType)
	data = protowire.AppendVarint(data, 42)
	data = protowire.AppendTag(data, 10, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)
	data = append(data, path.ToBin()...)

	var got StraightPath
	require.NoError(t, got.FromBin(data))
	assert.Equal(t, path, got)
}

func TestStraightPathBinaryErrors(t *testing.T) {
	var got StraightPath

	// A waypoint with a transition but no position.
	wp := message.AppendInt32(nil, waypointFieldTransition, int32(TransitionJump))
	assert.Error(t, got.FromBin(message.AppendMessage(nil, pathFieldWaypoint, wp)))

	// A position with two components.
	wp = protowire.AppendTag(nil, waypointFieldPos, protowire.BytesType)
	wp = protowire.AppendVarint(wp, 16)
	wp = protowire.AppendFixed64(wp, 1)
	wp = protowire.AppendFixed64(wp, 2)
	assert.Error(t, got.FromBin(message.AppendMessage(nil, pathFieldWaypoint, wp)))

	// Truncated input.
	data := StraightPath{{Pos: common.Vec3{1, 2, 3}}}.ToBin()
	assert.Error(t, got.FromBin(data[:len(data)-1]))
}

func TestStraightPathLength(t *testing.T) {
	path := StraightPath{{Pos: common.Vec3{3, 0, 4}}, {Pos: common.Vec3{3, 0, 5}}}
	assert.InDelta(t, 6.0, path.Length(common.Vec3{}), 1e-9)
	assert.Equal(t, []common.Vec3{{3, 0, 4}, {3, 0, 5}}, path.Positions())
	assert.Zero(t, StraightPath(nil).Length(common.Vec3{1, 1, 1}))
}
