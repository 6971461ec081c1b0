package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
)

func TestEnvFromDotenv(t *testing.T) {
	env := envFromDotenv(map[string]string{
		"LAYERPACK_OUTPUT": "build/app",
		"LAYERPACK_":       "kept",
		"API_URL":          "http://localhost",
	})

	require.Equal(t, bundle.Env{
		"output":     "build/app",
		"LAYERPACK_": "kept",
		"API_URL":    "http://localhost",
	}, env)
}

func TestMakeEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LAYERPACK_OUTPUT=from-file\nLAYERPACK_PROFILE=local\nLAYERPACK_REGION=eu\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.build"), []byte("LAYERPACK_OUTPUT=from-build-file\nLAYERPACK_PROFILE=ci\n"), 0644))

	lib.Stderr = &bytes.Buffer{}
	t.Cleanup(func() {
		lib.Stderr = os.Stderr
		workDir, envFiles, cliEnv = "", nil, nil
	})

	workDir = dir
	require.NoError(t, envFiles.Set(".env"))
	require.NoError(t, envFiles.Set(filepath.Join(dir, ".env.build")))

	env, err := makeEnv()
	require.NoError(t, err)
	require.Equal(t, bundle.Env{"output": "from-build-file", "profile": "ci", "region": "eu"}, env)

	cliEnv = lib.MapFlags{"output": "from-cli"}
	env, err = makeEnv()
	require.NoError(t, err)
	require.Equal(t, bundle.Env{"output": "from-cli", "profile": "ci", "region": "eu"}, env)
	require.Equal(t, "from-cli", env.Output())
}

func TestMakeEnv_MissingFile(t *testing.T) {
	t.Cleanup(func() {
		workDir, envFiles = "", nil
	})
	workDir = t.TempDir()
	envFiles = lib.ArrayFlags{"missing.env"}

	_, err := makeEnv()
	require.ErrorContains(t, err, "cannot load .env file")
}

func TestMakeEnv_Empty(t *testing.T) {
	env, err := makeEnv()
	require.NoError(t, err)
	require.Empty(t, env)
	require.Equal(t, bundle.DefaultOutput, env.Output())
}
