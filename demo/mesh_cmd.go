package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"navpath/debug_utils"
)

type meshCmd struct {
	commonOpts
	outFile string
}

func (meshCmd) Name() string {
	return "mesh"
}
func (meshCmd) Synopsis() string {
	return "Convert a mesh into a snapshot or into OBJ"
}
func (meshCmd) Usage() string {
	return `mesh [FLAGS]

demo mesh loads -mesh and writes it to -out. A .bin output is a navmesh
snapshot that keeps triangle flags and areas; any other extension is
written as Wavefront OBJ.
`
}

func (c *meshCmd) SetFlags(f *flag.FlagSet) {
	c.commonOpts.Register(f)
	f.StringVar(&c.outFile, "out", "",
		"Output file")
}

func (c *meshCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return exitStatus(c.innerExecute())
}

func (c *meshCmd) innerExecute() error {
	if c.outFile == "" {
		return usageErrorf("-out is required")
	}
	res, err := commonSetup(c.commonOpts, true)
	if err != nil {
		return err
	}
	defer res.Close()

	if strings.EqualFold(filepath.Ext(c.outFile), ".bin") {
		if err := os.WriteFile(c.outFile, res.nav.ToBin(), 0o644); err != nil {
			return errors.Wrap(err, "write snapshot")
		}
	} else {
		f, err := os.Create(c.outFile)
		if err != nil {
			return errors.Wrap(err, "create obj")
		}
		if err := debug_utils.DuDumpNavMeshToObj(res.nav, f); err != nil {
			f.Close()
			return errors.Wrap(err, "write obj")
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "close obj")
		}
	}
	res.logger.Info("mesh written", zap.String("out", c.outFile))
	return nil
}
