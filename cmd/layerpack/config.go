package main

import (
	"fmt"
	"path/filepath"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
)

// loadProject reads the layerpack section of package.json, if there is one, and applies cli overrides
func loadProject() (*bundle.Project, error) {
	dir, err := lib.WorkDir(workDir)
	if err != nil {
		return nil, err
	}

	config := lib.DefaultConfig()
	pkg := filepath.Join(dir, packagePath)
	if lib.FileExists(pkg) {
		packageJson, err := lib.ParsePackageJson(pkg)
		if err != nil {
			return nil, err
		}
		parsed, err := lib.ParseJsonConfig(packageJson)
		if err != nil {
			return nil, err
		}
		config = *parsed
	} else {
		lib.PrintInfo("no", packagePath, "found, using defaults")
	}

	if err := applyOverrides(&config, lib.IsFlagPassed); err != nil {
		return nil, err
	}

	project, err := bundle.NewProject(dir, config)
	if err != nil {
		return nil, err
	}
	project.Root = rootDir

	return project, nil
}

// applyOverrides overrides json values by values from cli, passed reports if a flag was set.
// Empty strings and port 0 are rejected, FillDefaults would silently undo them.
func applyOverrides(config *lib.Config, passed func(name string) bool) error {
	strs := []struct {
		name  string
		value string
		dst   *string
	}{
		{"namespace", namespace, &config.Namespace},
		{"chart", chart, &config.Chart},
		{"host", host, &config.Host},
	}
	for _, s := range strs {
		if !passed(s.name) {
			continue
		}
		if s.value == "" {
			return fmt.Errorf(`wrong "-%s" value: "", use non-empty string`, s.name)
		}
		*s.dst = s.value
	}

	if passed("port") {
		if !lib.ValidPort(port) {
			return fmt.Errorf(`wrong "-port" value: %d, use number 1-65535`, port)
		}
		config.Port = port
	}
	return nil
}
