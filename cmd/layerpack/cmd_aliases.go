package main

import (
	"io"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
	"github.com/natrim/layerpack/lib/registry"
)

func printAliases(w io.Writer, project *bundle.Project) error {
	aliases, err := project.Aliases()
	if err != nil {
		return err
	}

	root, err := project.RootDir()
	if err != nil {
		return err
	}
	lib.PrintInfof("scanned %s: %d packages\n", registry.Dir(root, project.Config.Namespace), len(aliases))

	return writeValue(w, format, aliases)
}
