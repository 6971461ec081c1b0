package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/natrim/layerpack/lib/registry"
)

func pluginsOfKind(cfg Configuration, kind PluginKind) []Plugin {
	var found []Plugin
	for _, p := range cfg.Plugins {
		if p.Kind == kind {
			found = append(found, p)
		}
	}
	return found
}

func TestDevelopment(t *testing.T) {
	project := newTestProject(t)

	cfg, err := project.Development(Env{"output": "build/dev"})
	require.NoError(t, err)

	out := filepath.Join(project.WorkDir, "build", "dev")
	require.Equal(t, ModeDevelopment, cfg.Mode)
	require.Equal(t, map[string]string{"bundle": filepath.Join(project.WorkDir, "src", "index.tsx")}, cfg.Entry)
	require.NotNil(t, cfg.Externals)
	require.Empty(t, cfg.Externals)

	require.False(t, cfg.Optimization.Minimize)
	require.Empty(t, cfg.Optimization.Minimizer)
	require.NotNil(t, cfg.Optimization.SplitChunks)

	require.Equal(t, &DevServer{
		Host:               "localhost",
		Port:               8080,
		HistoryAPIFallback: true,
		Index:              "/index.html",
		Hot:                true,
		DisableHostCheck:   true,
		ContentBase:        out,
		ServeIndex:         false,
	}, cfg.DevServer)

	html := pluginsOfKind(cfg, PluginHTML)
	require.Len(t, html, 1)
	require.Equal(t, filepath.Join(project.WorkDir, "template.index.html"), html[0].Template)
	require.Equal(t, filepath.Join(out, "index.html"), html[0].Filename)
	require.True(t, html[0].Inject)

	// define stays first, html is appended
	require.Equal(t, PluginDefine, cfg.Plugins[0].Kind)
	require.Equal(t, `"development"`, cfg.Plugins[0].Definitions["process.env.NODE_ENV"])
}

func TestProduction(t *testing.T) {
	project := newTestProject(t)
	project.Config.BuildTemplate = "public/index.html"

	cfg, err := project.Production(Env{})
	require.NoError(t, err)

	require.Equal(t, ModeProduction, cfg.Mode)
	require.True(t, cfg.Optimization.Minimize)
	require.Nil(t, cfg.DevServer)
	require.Nil(t, cfg.Externals)
	require.Equal(t, filepath.Join(project.WorkDir, "src", "index.tsx"), cfg.Entry["bundle"])

	html := pluginsOfKind(cfg, PluginHTML)
	require.Len(t, html, 1)
	require.Equal(t, filepath.Join(project.WorkDir, "public", "index.html"), html[0].Template)
	require.Equal(t, filepath.Join(project.WorkDir, "dist", "index.html"), html[0].Filename)
	require.Empty(t, pluginsOfKind(cfg, PluginBundleAnalyzer))
}

func TestOptimized(t *testing.T) {
	project := newTestProject(t, "core", "shapes")

	cfg, err := project.Optimized(Env{})
	require.NoError(t, err)

	require.Equal(t, registry.AliasMap{
		"@viz/core/lib":   "@viz/core/esm",
		"@viz/shapes/lib": "@viz/shapes/esm",
		"bizcharts":       "bizcharts/es",
	}, cfg.Resolve.Alias)

	require.Len(t, cfg.Module.Rules, 4)

	var pure, compiled []Rule
	for _, r := range cfg.Module.Rules[2:] {
		if r.SideEffectFree() {
			pure = append(pure, r)
		} else {
			compiled = append(compiled, r)
		}
	}
	require.Len(t, pure, 1)
	require.Len(t, compiled, 1)

	entry := "/app/node_modules/bizcharts/es/index.js"
	other := "/app/node_modules/bizcharts/es/components/Chart.js"
	nested := "/app/node_modules/bizcharts/es/core/index.js"

	require.True(t, pure[0].Matches(entry))
	require.False(t, pure[0].Matches(other))
	require.False(t, pure[0].Matches(nested))

	require.False(t, compiled[0].Matches(entry))
	require.True(t, compiled[0].Matches(other))
	require.True(t, compiled[0].Matches(nested))
	require.Equal(t, pure[0].Include, compiled[0].Exclude)

	for _, r := range cfg.Module.Rules[2:] {
		require.Equal(t, "babel-loader", r.Use[0].Loader)
		require.False(t, r.Matches("/app/node_modules/bizcharts/lib/index.js"))
	}
}

func TestOptimized_WindowsPaths(t *testing.T) {
	rules := ChartRules("bizcharts")
	require.True(t, rules[0].Matches(`C:\app\node_modules\bizcharts\es\index.js`))
	require.False(t, rules[1].Matches(`C:\app\node_modules\bizcharts\es\index.js`))
	require.True(t, rules[1].Matches(`C:\app\node_modules\bizcharts\es\util.js`))
}

func TestOptimized_EnvironmentAliasWins(t *testing.T) {
	project := newTestProject(t, "core")
	project.Config.Chart = "@viz/core/lib"

	cfg, err := project.Optimized(Env{})
	require.NoError(t, err)
	require.Equal(t, "@viz/core/lib/es", cfg.Resolve.Alias["@viz/core/lib"])
}

func TestOptimized_MissingNamespace(t *testing.T) {
	project := newTestProject(t)

	_, err := project.Optimized(Env{})
	require.ErrorIs(t, err, registry.ErrNamespaceNotFound)
}

func TestOptimized_RootOverride(t *testing.T) {
	project := newTestProject(t)
	project.Root = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project.Root, "node_modules", "@viz", "g2"), 0755))

	cfg, err := project.Optimized(Env{})
	require.NoError(t, err)
	require.Equal(t, "@viz/g2/esm", cfg.Resolve.Alias["@viz/g2/lib"])
}

func TestOptimized_RescansEveryCall(t *testing.T) {
	project := newTestProject(t, "core")

	first, err := project.Optimized(Env{})
	require.NoError(t, err)
	require.Len(t, first.Resolve.Alias, 2)

	require.NoError(t, os.MkdirAll(filepath.Join(project.WorkDir, "node_modules", "@viz", "shapes"), 0755))

	second, err := project.Optimized(Env{})
	require.NoError(t, err)
	require.Len(t, second.Resolve.Alias, 3)
	require.Len(t, first.Resolve.Alias, 2)
}

func TestAnalyze(t *testing.T) {
	project := newTestProject(t, "core")

	tests := []struct {
		name   string
		flavor Flavor
		wrap   Builder
	}{
		{name: "standard", flavor: FlavorStandard, wrap: project.Production},
		{name: "optimized", flavor: FlavorOptimized, wrap: project.Optimized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped, err := tt.wrap(Env{})
			require.NoError(t, err)

			cfg, err := project.Analyze(Env{}, tt.flavor)
			require.NoError(t, err)

			require.Len(t, cfg.Plugins, len(wrapped.Plugins)+1)
			require.Equal(t, PluginBundleAnalyzer, cfg.Plugins[len(cfg.Plugins)-1].Kind)

			// nothing but the analyzer step differs
			cfg.Plugins = cfg.Plugins[:len(cfg.Plugins)-1]
			require.Equal(t, wrapped, cfg)
		})
	}
}

func TestBuilders_DoNotShareState(t *testing.T) {
	project := newTestProject(t, "core")

	prod, err := project.Production(Env{})
	require.NoError(t, err)
	prodCopy := prod.Clone()

	_, err = project.Optimized(Env{})
	require.NoError(t, err)
	_, err = project.Analyze(Env{}, FlavorOptimized)
	require.NoError(t, err)

	again, err := project.Production(Env{})
	require.NoError(t, err)
	require.Equal(t, prodCopy, prod)
	require.Equal(t, prod, again)
}
