package main

import (
	"io"
	"maps"
	"slices"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
)

// esbuildSummary is the printable part of api.BuildOptions
type esbuildSummary struct {
	EntryPoints       map[string]string `json:"entryPoints" yaml:"entryPoints"`
	Outdir            string            `json:"outdir" yaml:"outdir"`
	AbsWorkingDir     string            `json:"absWorkingDir" yaml:"absWorkingDir"`
	EntryNames        string            `json:"entryNames" yaml:"entryNames"`
	ChunkNames        string            `json:"chunkNames" yaml:"chunkNames"`
	AssetNames        string            `json:"assetNames" yaml:"assetNames"`
	Minify            bool              `json:"minify" yaml:"minify"`
	Splitting         bool              `json:"splitting" yaml:"splitting"`
	Sourcemap         bool              `json:"sourcemap" yaml:"sourcemap"`
	Metafile          bool              `json:"metafile" yaml:"metafile"`
	Tsconfig          string            `json:"tsconfig,omitempty" yaml:"tsconfig,omitempty"`
	Target            string            `json:"target,omitempty" yaml:"target,omitempty"`
	Engines           []string          `json:"engines,omitempty" yaml:"engines,omitempty"`
	ResolveExtensions []string          `json:"resolveExtensions" yaml:"resolveExtensions"`
	External          []string          `json:"external,omitempty" yaml:"external,omitempty"`
	Define            map[string]string `json:"define" yaml:"define"`
	Loader            map[string]string `json:"loader" yaml:"loader"`
	Plugins           []string          `json:"plugins" yaml:"plugins"`
}

// esbuildOptions translates cfg and applies what only the cli knows: work directory and browser target
func esbuildOptions(project *bundle.Project, cfg bundle.Configuration) (api.BuildOptions, error) {
	opts, err := bundle.BuildOptions(cfg)
	if err != nil {
		return api.BuildOptions{}, err
	}

	dir, err := lib.WorkDir(project.WorkDir)
	if err != nil {
		return api.BuildOptions{}, err
	}
	opts.AbsWorkingDir = dir

	opts.Target, err = lib.ParseBrowserTarget(project.Config.Target)
	if err != nil {
		return api.BuildOptions{}, err
	}

	return opts, nil
}

func summarize(opts api.BuildOptions, browserTarget string) (esbuildSummary, error) {
	summary := esbuildSummary{
		EntryPoints:       make(map[string]string, len(opts.EntryPointsAdvanced)),
		Outdir:            opts.Outdir,
		AbsWorkingDir:     opts.AbsWorkingDir,
		EntryNames:        opts.EntryNames,
		ChunkNames:        opts.ChunkNames,
		AssetNames:        opts.AssetNames,
		Minify:            opts.MinifyWhitespace && opts.MinifyIdentifiers && opts.MinifySyntax,
		Splitting:         opts.Splitting,
		Sourcemap:         opts.Sourcemap != api.SourceMapNone,
		Metafile:          opts.Metafile,
		Tsconfig:          opts.Tsconfig,
		Target:            browserTarget,
		ResolveExtensions: opts.ResolveExtensions,
		External:          opts.External,
		Define:            opts.Define,
		Loader:            make(map[string]string, len(opts.Loader)),
	}

	for _, entry := range opts.EntryPointsAdvanced {
		summary.EntryPoints[entry.OutputPath] = entry.InputPath
	}
	for _, engine := range opts.Engines {
		name, err := lib.StringifyEngine(engine.Name)
		if err != nil {
			return esbuildSummary{}, err
		}
		summary.Engines = append(summary.Engines, name+engine.Version)
	}
	for _, ext := range slices.Sorted(maps.Keys(opts.Loader)) {
		name, err := lib.StringifyLoader(opts.Loader[ext])
		if err != nil {
			return esbuildSummary{}, err
		}
		summary.Loader[ext] = name
	}
	for _, plugin := range opts.Plugins {
		summary.Plugins = append(summary.Plugins, plugin.Name)
	}

	return summary, nil
}

func printEsbuild(w io.Writer, project *bundle.Project, cfg bundle.Configuration) error {
	opts, err := esbuildOptions(project, cfg)
	if err != nil {
		return err
	}

	summary, err := summarize(opts, project.Config.Target)
	if err != nil {
		return err
	}

	return writeValue(w, format, summary)
}
