package bundle

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/plugins"
)

// extensions checked against rule tests when deriving esbuild loaders
var ruleExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".css", ".less", ".json", ".txt"}

var hashPlaceholders = strings.NewReplacer(
	"[chunkhash]", "[hash]",
	"[contenthash]", "[hash]",
	"[fullhash]", "[hash]",
)

// BuildOptions translates cfg to esbuild build options. Nothing is built.
func BuildOptions(cfg Configuration) (api.BuildOptions, error) {
	opts := api.BuildOptions{
		Outdir:            cfg.Output.Path,
		EntryNames:        entryNames(cfg.Output.Filename),
		ChunkNames:        "chunks/[name]-[hash]",
		AssetNames:        "media/[name]-[hash]",
		Bundle:            true,
		Format:            api.FormatESModule,
		TreeShaking:       api.TreeShakingTrue,
		Splitting:         cfg.Optimization.SplitChunks != nil,
		Sourcemap:         sourceMap(cfg.Devtool),
		ResolveExtensions: slices.Clone(cfg.Resolve.Extensions),
		External:          slices.Sorted(maps.Keys(cfg.Externals)),
		Loader:            Loaders(cfg.Module.Rules),
		Define:            map[string]string{},
		Write:             true,
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Entry)) {
		opts.EntryPointsAdvanced = append(opts.EntryPointsAdvanced, api.EntryPoint{
			InputPath:  cfg.Entry[name],
			OutputPath: name,
		})
	}

	if cfg.Optimization.Minimize && len(cfg.Optimization.Minimizer) > 0 {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
		opts.LegalComments = api.LegalCommentsNone
		for _, m := range cfg.Optimization.Minimizer {
			if m.ExtractComments {
				opts.LegalComments = api.LegalCommentsExternal
			}
		}
	}

	for _, p := range cfg.Plugins {
		switch p.Kind {
		case PluginDefine:
			maps.Copy(opts.Define, p.Definitions)
		case PluginBundleAnalyzer:
			opts.Metafile = true
		}
	}

	for _, rp := range cfg.Resolve.Plugins {
		if rp.Name == "tsconfig-paths" && rp.ConfigFile != "" {
			opts.Tsconfig = rp.ConfigFile
		}
	}

	if len(cfg.Engines) > 0 {
		engines, err := lib.ParseEngines(cfg.Engines)
		if err != nil {
			return api.BuildOptions{}, err
		}
		opts.Engines = engines
	}

	var pure []plugins.PathMatcher
	for _, rule := range cfg.Module.Rules {
		if !rule.SideEffectFree() {
			continue
		}
		matcher, err := rule.Compile()
		if err != nil {
			return api.BuildOptions{}, fmt.Errorf("invalid side effects rule %q: %w", rule.Test, err)
		}
		pure = append(pure, matcher)
	}
	opts.Plugins = []api.Plugin{plugins.AliasPlugin(cfg.Resolve.Alias, pure...)}

	return opts, nil
}

// Loaders derives esbuild loaders per extension from the rule loader chains, the first matching rule wins.
func Loaders(rules []Rule) map[string]api.Loader {
	result := make(map[string]api.Loader)
	for _, ext := range ruleExtensions {
		for _, rule := range rules {
			if !rule.Test.MatchString("file" + ext) {
				continue
			}
			if l, ok := ruleLoader(rule, ext); ok {
				result[ext] = l
				break
			}
		}
	}
	return result
}

func ruleLoader(rule Rule, ext string) (api.Loader, bool) {
	if len(rule.Use) == 0 {
		return api.LoaderNone, false
	}
	for _, l := range rule.Use {
		if l.Options != nil && l.Options.Modules != nil {
			return api.LoaderLocalCSS, true
		}
	}
	switch rule.Use[len(rule.Use)-1].Loader {
	case "babel-loader", "ts-loader":
		l, err := lib.ParseLoader(strings.TrimPrefix(ext, "."))
		return l, err == nil
	case "css-loader", "less-loader":
		return api.LoaderCSS, true
	}
	return api.LoaderNone, false
}

func entryNames(filename string) string {
	if filename == "" {
		return "[name]"
	}
	return hashPlaceholders.Replace(strings.TrimSuffix(filename, filepath.Ext(filename)))
}

func sourceMap(devtool string) api.SourceMap {
	switch {
	case devtool == "":
		return api.SourceMapNone
	case strings.HasPrefix(devtool, "inline"):
		return api.SourceMapInline
	case strings.Contains(devtool, "hidden"):
		return api.SourceMapExternal
	default:
		return api.SourceMapLinked
	}
}
