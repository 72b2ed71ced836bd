package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"navpath/common"
	"navpath/debug_utils"
)

type pathCmd struct {
	commonOpts
	start       common.Vec3
	end         common.Vec3
	startFlag   vec3Flag
	endFlag     vec3Flag
	geojsonFile string
	binFile     string
}

func (pathCmd) Name() string {
	return "path"
}
func (pathCmd) Synopsis() string {
	return "Find the straight path between two points"
}
func (pathCmd) Usage() string {
	return `path [FLAGS]

demo path snaps -start and -end onto the mesh, searches a triangle corridor
between them and prints the waypoints of the shortest path inside it.
`
}

func (c *pathCmd) SetFlags(f *flag.FlagSet) {
	c.commonOpts.Register(f)
	c.startFlag.v = &c.start
	c.endFlag.v = &c.end
	f.Var(&c.startFlag, "start", "Start position x,y,z")
	f.Var(&c.endFlag, "end", "End position x,y,z")
	f.StringVar(&c.geojsonFile, "geojson", "",
		"Write the mesh, corridor and path as GeoJSON to this file")
	f.StringVar(&c.binFile, "bin", "",
		"Write the straight path in protobuf wire format to this file")
}

func (c *pathCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return exitStatus(c.innerExecute(ctx))
}

func (c *pathCmd) innerExecute(ctx context.Context) error {
	if !c.startFlag.set || !c.endFlag.set {
		return usageErrorf("both -start and -end are required")
	}
	res, err := commonSetup(c.commonOpts, true)
	if err != nil {
		return err
	}
	defer res.Close()

	q, filter, err := res.query()
	if err != nil {
		return err
	}
	qr, err := q.FindWaypoints(ctx, c.start, c.end, filter)
	if err != nil {
		return errors.Wrap(err, "find waypoints")
	}
	res.logger.Info("path found",
		zap.Int32("startRef", int32(qr.StartRef)),
		zap.Int32("endRef", int32(qr.EndRef)),
		zap.Int("corridor", len(qr.Path.Corridor)),
		zap.Int("expanded", qr.Path.Expanded),
		zap.Bool("partial", qr.Path.Partial),
		zap.Bool("outOfNodes", qr.Path.OutOfNodes),
		zap.Duration("search", qr.SearchTime),
		zap.Duration("smooth", qr.SmoothTime))

	for i, wp := range qr.Waypoints {
		fmt.Printf("%d\t%.4f\t%.4f\t%.4f\t%s\n", i, wp.Pos[0], wp.Pos[1], wp.Pos[2], wp.Transition)
	}
	fmt.Printf("length\t%.4f\n", qr.Waypoints.Length(qr.StartPos))

	if c.binFile != "" {
		if err := os.WriteFile(c.binFile, qr.Waypoints.ToBin(), 0o644); err != nil {
			return errors.Wrap(err, "write path")
		}
	}
	if c.geojsonFile != "" {
		data, err := debug_utils.DuDumpQueryGeoJSON(res.nav, filter, qr)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.geojsonFile, data, 0o644); err != nil {
			return errors.Wrap(err, "write geojson")
		}
	}
	return nil
}
