package debug_utils

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"navpath/common"
)

// DuGeoJSONDraw renders primitives onto the x/z plane as GeoJSON features.
// Every primitive becomes one feature carrying simplestyle color properties
// and the label set by SetLabel.
type DuGeoJSONDraw struct {
	DuDebugDrawBase
	fc *geojson.FeatureCollection

	label string
	prim  DuDebugDrawPrimitives
	size  float64
	verts []common.Vec3
	cols  []Colorb
}

func NewDuGeoJSONDraw() *DuGeoJSONDraw {
	return &DuGeoJSONDraw{fc: geojson.NewFeatureCollection()}
}

// SetLabel sets the "kind" property of the features drawn from now on.
func (d *DuGeoJSONDraw) SetLabel(label string) { d.label = label }

func (d *DuGeoJSONDraw) Begin(prim DuDebugDrawPrimitives, size ...float64) {
	d.prim = prim
	d.size = 1.0
	if len(size) > 0 {
		d.size = size[0]
	}
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *DuGeoJSONDraw) Vertex(pos common.Vec3, color Colorb) {
	d.verts = append(d.verts, pos)
	d.cols = append(d.cols, color)
}

// End flushes the vertices submitted since Begin. Incomplete primitives at
// the tail are dropped.
func (d *DuGeoJSONDraw) End() {
	switch d.prim {
	case DU_DRAW_POINTS:
		for i, v := range d.verts {
			d.add(toPoint(v), d.cols[i], d.verts[i:i+1])
		}
	case DU_DRAW_LINES:
		for i := 0; i+1 < len(d.verts); i += 2 {
			d.add(orb.LineString{toPoint(d.verts[i]), toPoint(d.verts[i+1])}, d.cols[i], d.verts[i:i+2])
		}
	case DU_DRAW_TRIS:
		for i := 0; i+2 < len(d.verts); i += 3 {
			a, b, c := toPoint(d.verts[i]), toPoint(d.verts[i+1]), toPoint(d.verts[i+2])
			d.add(orb.Polygon{orb.Ring{a, b, c, a}}, d.cols[i], d.verts[i:i+3])
		}
	}
	d.verts = d.verts[:0]
	d.cols = d.cols[:0]
}

func (d *DuGeoJSONDraw) add(g orb.Geometry, col Colorb, verts []common.Vec3) {
	f := geojson.NewFeature(g)
	if d.label != "" {
		f.Properties["kind"] = d.label
	}
	heights := make([]float64, len(verts))
	for i, v := range verts {
		heights[i] = v[1]
	}
	f.Properties["y"] = heights
	switch d.prim {
	case DU_DRAW_TRIS:
		f.Properties["fill"] = col.Hex()
		f.Properties["fill-opacity"] = col.Opacity()
	case DU_DRAW_LINES:
		f.Properties["stroke"] = col.Hex()
		f.Properties["stroke-opacity"] = col.Opacity()
		f.Properties["stroke-width"] = d.size
	default:
		f.Properties["marker-color"] = col.Hex()
	}
	d.fc.Append(f)
}

func (d *DuGeoJSONDraw) FeatureCollection() *geojson.FeatureCollection { return d.fc }

func (d *DuGeoJSONDraw) MarshalJSON() ([]byte, error) { return d.fc.MarshalJSON() }

func toPoint(v common.Vec3) orb.Point { return orb.Point{v[0], v[2]} }
