package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navpath/common"
)

func TestVec3Flag(t *testing.T) {
	var v common.Vec3
	f := vec3Flag{v: &v}
	require.NoError(t, f.Set("1, -2.5,3"))
	assert.True(t, f.set)
	assert.Equal(t, common.Vec3{1, -2.5, 3}, v)
	assert.Equal(t, "1,-2.5,3", f.String())

	assert.Error(t, f.Set("1,2"))
	assert.Error(t, f.Set("1,x,3"))
	assert.Equal(t, "", (&vec3Flag{}).String())
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, subcommands.ExitSuccess, exitStatus(nil))
	assert.Equal(t, subcommands.ExitUsageError, exitStatus(usageErrorf("bad flag %q", "x")))
	assert.Equal(t, subcommands.ExitFailure, exitStatus(errors.New("boom")))
}

func TestCommonSetup(t *testing.T) {
	_, err := commonSetup(commonOpts{logLevel: "error"}, true)
	var exitErr exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, subcommands.ExitUsageError, exitErr.ExitStatus())

	_, err = commonSetup(commonOpts{logLevel: "loud"}, false)
	assert.Error(t, err)

	meshFile := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(meshFile, []byte("v 0 0 0\nv 1 0 0\nv 0 0 1\nf 1 2 3\n"), 0o644))

	res, err := commonSetup(commonOpts{meshFile: meshFile, logLevel: "error"}, true)
	require.NoError(t, err)
	defer res.Close()
	assert.Equal(t, 1, res.nav.GetTriCount())

	q, filter, err := res.query()
	require.NoError(t, err)
	assert.Same(t, res.nav, q.GetAttachedNavMesh())
	assert.NotNil(t, filter)
}
