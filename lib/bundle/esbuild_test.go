package bundle

import (
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions_Production(t *testing.T) {
	project := newTestProject(t)
	cfg, err := project.Production(Env{"output": "out"})
	require.NoError(t, err)

	opts, err := BuildOptions(cfg)
	require.NoError(t, err)

	require.Equal(t, cfg.Output.Path, opts.Outdir)
	require.Equal(t, "[name].[hash]", opts.EntryNames)
	require.Equal(t, []api.EntryPoint{{InputPath: cfg.Entry["bundle"], OutputPath: "bundle"}}, opts.EntryPointsAdvanced)
	require.True(t, opts.Bundle)
	require.True(t, opts.Splitting)
	require.Equal(t, api.FormatESModule, opts.Format)
	require.True(t, opts.MinifyWhitespace)
	require.True(t, opts.MinifyIdentifiers)
	require.True(t, opts.MinifySyntax)
	require.Equal(t, api.LegalCommentsNone, opts.LegalComments)
	require.Equal(t, api.SourceMapNone, opts.Sourcemap)
	require.Equal(t, map[string]string{"process.env.NODE_ENV": `"production"`}, opts.Define)
	require.Equal(t, "./tsconfig.json", opts.Tsconfig)
	require.Equal(t, []api.Engine{{Name: api.EngineChrome, Version: "63"}}, opts.Engines)
	require.Empty(t, opts.External)
	require.False(t, opts.Metafile)
	require.Len(t, opts.Plugins, 1)
}

func TestBuildOptions_Development(t *testing.T) {
	project := newTestProject(t)
	cfg, err := project.Development(Env{})
	require.NoError(t, err)

	opts, err := BuildOptions(cfg)
	require.NoError(t, err)

	require.False(t, opts.MinifyWhitespace)
	require.False(t, opts.MinifyIdentifiers)
	require.False(t, opts.MinifySyntax)
	require.Equal(t, api.SourceMapLinked, opts.Sourcemap)
	require.Equal(t, `"development"`, opts.Define["process.env.NODE_ENV"])
}

func TestBuildOptions_Analyze(t *testing.T) {
	project := newTestProject(t)
	cfg, err := project.Analyze(Env{}, FlavorStandard)
	require.NoError(t, err)

	opts, err := BuildOptions(cfg)
	require.NoError(t, err)
	require.True(t, opts.Metafile)
}

func TestBuildOptions_InvalidEngine(t *testing.T) {
	_, err := BuildOptions(Configuration{Engines: map[string]string{"netscape": "4"}})
	require.ErrorContains(t, err, "unsupported engine")
}

func TestBuildOptions_InvalidSideEffectsRule(t *testing.T) {
	sideEffects := false
	cfg := Configuration{Module: Module{Rules: []Rule{{Test: `\.js$`, Include: `node_modules/(`, SideEffects: &sideEffects}}}}

	_, err := BuildOptions(cfg)
	require.ErrorContains(t, err, "invalid side effects rule")
}

func TestRule_Compile(t *testing.T) {
	rules := ChartRules("bizcharts")
	paths := []string{
		"/app/node_modules/bizcharts/es/index.js",
		"/app/node_modules/bizcharts/es/util.js",
		`C:\app\node_modules\bizcharts\es\index.js`,
		"/app/node_modules/bizcharts/lib/index.js",
		"/app/src/index.js",
	}
	for _, rule := range rules {
		matcher, err := rule.Compile()
		require.NoError(t, err)
		for _, path := range paths {
			require.Equal(t, rule.Matches(path), matcher.Matches(path), path)
		}
	}

	tests := []struct {
		name string
		rule Rule
	}{
		{name: "test", rule: Rule{Test: "("}},
		{name: "include", rule: Rule{Test: `\.js$`, Include: "["}},
		{name: "exclude", rule: Rule{Test: `\.js$`, Exclude: "*js"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rule.Compile()
			require.Error(t, err)
			require.False(t, tt.rule.Matches("/app/src/index.js"))
		})
	}
}

func TestBuildOptions_ExtractComments(t *testing.T) {
	cfg := Configuration{Optimization: Optimization{
		Minimize:  true,
		Minimizer: []Minimizer{{Name: "terser", ExtractComments: true}},
	}}

	opts, err := BuildOptions(cfg)
	require.NoError(t, err)
	require.Equal(t, api.LegalCommentsExternal, opts.LegalComments)
	require.False(t, opts.Splitting)
}

func TestLoaders(t *testing.T) {
	project := newTestProject(t)
	cfg, err := project.Base(Env{}, ModeProduction)
	require.NoError(t, err)

	require.Equal(t, map[string]api.Loader{
		".ts":   api.LoaderTS,
		".tsx":  api.LoaderTSX,
		".less": api.LoaderLocalCSS,
	}, Loaders(cfg.Module.Rules))

	withChart := cfg.WithRules(ChartRules("bizcharts")...)
	loaders := Loaders(withChart.Module.Rules)
	require.Equal(t, api.LoaderJS, loaders[".js"])
}

func TestEntryNames(t *testing.T) {
	tests := map[string]string{
		"":                        "[name]",
		"[name].[chunkhash].js":   "[name].[hash]",
		"[name].[contenthash].js": "[name].[hash]",
		"[name].js":               "[name]",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, expected, entryNames(input))
		})
	}
}

func TestSourceMap(t *testing.T) {
	tests := map[string]api.SourceMap{
		"":                             api.SourceMapNone,
		"source-map":                   api.SourceMapLinked,
		"inline-source-map":            api.SourceMapInline,
		"hidden-source-map":            api.SourceMapExternal,
		"eval-cheap-module-source-map": api.SourceMapLinked,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, expected, sourceMap(input))
		})
	}
}
