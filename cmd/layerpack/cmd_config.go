package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
)

// compose prints what the flags ask for: the alias map, the esbuild options or the whole configuration
func compose(project *bundle.Project, env bundle.Env) error {
	if isAliases {
		return printAliases(lib.Stdout, project)
	}

	cfg, err := project.Compose(target, env)
	if err != nil {
		return err
	}

	if isEsbuild {
		return printEsbuild(lib.Stdout, project, cfg)
	}

	return writeValue(lib.Stdout, format, cfg)
}

func writeValue(w io.Writer, format string, value any) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("wrong \"-format\" value: %q (allowed: json|yaml)", format)
	}
}
