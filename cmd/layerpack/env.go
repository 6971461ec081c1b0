package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
)

const envPrefix = "LAYERPACK_"

func makeEnv() (bundle.Env, error) {
	env := bundle.Env{}

	// later env files override earlier ones
	for _, envFile := range envFiles {
		path := envFile
		if !filepath.IsAbs(path) {
			dir, err := lib.WorkDir(workDir)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, path)
		}

		values, err := godotenv.Read(path)
		if err != nil {
			return nil, errors.Join(errors.New("cannot load .env file"), err)
		}
		for key, value := range envFromDotenv(values) {
			env[key] = value
		}
		lib.PrintInfo("env file:", envFile)
	}

	// cli wins over the env files
	for key, value := range cliEnv {
		env[key] = value
	}

	return env, nil
}

// envFromDotenv strips the LAYERPACK_ prefix and lowercases such keys, other keys are kept as they are
func envFromDotenv(values map[string]string) bundle.Env {
	env := make(bundle.Env, len(values))
	for key, value := range values {
		if name, ok := strings.CutPrefix(key, envPrefix); ok && name != "" {
			key = strings.ToLower(name)
		}
		env[key] = value
	}
	return env
}
