package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/google/subcommands"

	"navpath/common"
	"navpath/demo/mesh"
)

type benchCmd struct {
	commonOpts
	casesFile string
	rounds    int
}

func (benchCmd) Name() string {
	return "bench"
}
func (benchCmd) Synopsis() string {
	return "Run a test case file and report timings"
}
func (benchCmd) Usage() string {
	return `bench [FLAGS]

demo bench loads the mesh named by the test case file (its "f" row, relative
to the file) unless -mesh is given, then runs every "pf" query -rounds times.
`
}

func (c *benchCmd) SetFlags(f *flag.FlagSet) {
	c.commonOpts.Register(f)
	f.StringVar(&c.casesFile, "cases", "",
		"Test case file")
	f.IntVar(&c.rounds, "rounds", 1,
		"Number of times to run the test case")
}

func (c *benchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return exitStatus(c.innerExecute(ctx))
}

func (c *benchCmd) innerExecute(ctx context.Context) error {
	if c.casesFile == "" {
		return usageErrorf("-cases is required")
	}
	if c.rounds <= 0 {
		return usageErrorf("-rounds must be positive")
	}
	tc := mesh.NewTestCase()
	if err := tc.Load(c.casesFile); err != nil {
		return err
	}
	opts := c.commonOpts
	if opts.meshFile == "" && tc.GetGeomFileName() != "" {
		opts.meshFile = filepath.Join(filepath.Dir(c.casesFile), tc.GetGeomFileName())
	}

	res, err := commonSetup(opts, true)
	if err != nil {
		return err
	}
	defer res.Close()

	q, filter, err := res.query()
	if err != nil {
		return err
	}
	for i := 0; i < c.rounds; i++ {
		if err := tc.DoTests(ctx, q, filter, res.logger); err != nil {
			return err
		}
	}

	nearest, path, straight := tc.Histories()
	fmt.Printf("%-10s %8s %10s %10s %10s\n", "stage", "samples", "avg ms", "min ms", "max ms")
	for _, row := range []struct {
		name string
		h    *common.ValueHistory
	}{
		{"tri", nearest},
		{"path", path},
		{"straight", straight},
	} {
		fmt.Printf("%-10s %8d %10.4f %10.4f %10.4f\n", row.name, row.h.GetSampleCount(),
			row.h.GetAverage(), row.h.GetSampleMin(), row.h.GetSampleMax())
	}
	return nil
}
