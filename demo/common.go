package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"navpath/common"
	"navpath/demo/config"
	"navpath/demo/mesh"
	"navpath/detour"
)

// exitError interface is for errors that can be returned from
// subcommands with more detail.
type exitError interface {
	error
	ExitStatus() subcommands.ExitStatus
}

type usageError struct {
	error
}

func (e usageError) ExitStatus() subcommands.ExitStatus {
	return subcommands.ExitUsageError
}

func usageErrorf(format string, args ...any) error {
	return usageError{errors.Errorf(format, args...)}
}

// exitStatus reports err on stderr and maps it to an exit status.
func exitStatus(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "demo: %s\n", err)
	if err, ok := err.(exitError); ok {
		return err.ExitStatus()
	}
	return subcommands.ExitFailure
}

// commonOpts contains common command options.
type commonOpts struct {
	configFile string
	meshFile   string
	logLevel   string
}

// Register adds flags for common options.
func (c *commonOpts) Register(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "",
		"YAML configuration file")
	f.StringVar(&c.meshFile, "mesh", "",
		"Mesh file (.obj or .bin), overrides the configuration")
	f.StringVar(&c.logLevel, "log-level", "",
		"Log level, overrides the configuration")
}

// commonResources holds what every command needs. Call Close when done.
type commonResources struct {
	cfg    *config.Config
	logger *zap.Logger
	nav    *detour.DtNavMesh
}

func (r *commonResources) Close() error {
	if r.logger != nil {
		_ = r.logger.Sync()
	}
	return nil
}

// query builds a navmesh query and the filter named by the configuration.
func (r *commonResources) query() (*detour.DtNavMeshQuery, *detour.DtQueryFilter, error) {
	q, err := detour.NewDtNavMeshQuery(r.nav, r.cfg.Query.Options(r.logger)...)
	if err != nil {
		return nil, nil, err
	}
	filter, err := r.cfg.Query.Filter()
	if err != nil {
		return nil, nil, err
	}
	return q, filter, nil
}

// commonSetup loads the configuration and the mesh. loadMesh is false for
// commands that pick the mesh file themselves.
func commonSetup(c commonOpts, loadMesh bool) (res *commonResources, err error) {
	cfg := config.Default()
	if c.configFile != "" {
		if cfg, err = config.Load(c.configFile); err != nil {
			return nil, err
		}
	}
	if c.meshFile != "" {
		cfg.Mesh = c.meshFile
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	res = &commonResources{cfg: cfg}
	if res.logger, err = common.NewLogger(cfg.Log); err != nil {
		return nil, err
	}
	if !loadMesh {
		return res, nil
	}
	if cfg.Mesh == "" {
		res.Close()
		return nil, usageErrorf("no mesh given, use -mesh or set mesh in the configuration")
	}
	if res.nav, err = mesh.LoadNavMesh(cfg, cfg.Mesh); err != nil {
		res.Close()
		return nil, err
	}
	bmin, bmax := res.nav.GetBounds()
	res.logger.Info("navmesh loaded",
		zap.String("mesh", cfg.Mesh),
		zap.Int("verts", res.nav.GetVertCount()),
		zap.Int("tris", res.nav.GetTriCount()),
		zap.Float64s("bmin", bmin[:]),
		zap.Float64s("bmax", bmax[:]))
	return res, nil
}

// vec3Flag parses "x,y,z".
type vec3Flag struct {
	v   *common.Vec3
	set bool
}

func (f *vec3Flag) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v[0], f.v[1], f.v[2])
}

func (f *vec3Flag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return errors.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return errors.Wrapf(err, "coordinate %d", i)
		}
		f.v[i] = v
	}
	f.set = true
	return nil
}
