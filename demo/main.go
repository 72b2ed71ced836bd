// Command demo runs path queries against a navigation mesh loaded from a
// Wavefront OBJ file or a navmesh snapshot.
//
// Subcommands:
//
//	path   find the straight path between two points
//	bench  run a test case file and report timings
//	mesh   convert a mesh into a snapshot or back into OBJ
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&pathCmd{}, "")
	subcommands.Register(&benchCmd{}, "")
	subcommands.Register(&meshCmd{}, "")
	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
