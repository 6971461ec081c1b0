package bundle

import (
	"path/filepath"
	"regexp"

	"github.com/natrim/layerpack/lib/registry"
)

// Flavor picks which production build an analysis wraps.
type Flavor string

const (
	FlavorStandard  Flavor = "standard"
	FlavorOptimized Flavor = "optimized"
)

func (p *Project) entry() (map[string]string, error) {
	entry, err := p.path(p.Config.SourceDir, p.Config.Entry)
	if err != nil {
		return nil, err
	}
	return map[string]string{EntryName: entry}, nil
}

// Development is the dev server build: no minification, no externals, html from the dev template.
func (p *Project) Development(env Env) (Configuration, error) {
	base, err := p.Base(env, ModeDevelopment)
	if err != nil {
		return Configuration{}, err
	}
	entry, err := p.entry()
	if err != nil {
		return Configuration{}, err
	}
	template, err := p.path(p.Config.DevTemplate)
	if err != nil {
		return Configuration{}, err
	}

	cfg := base.Clone()
	cfg.Entry = entry
	cfg.Externals = map[string]string{}
	// minimize and minimizer are left out to keep rebuilds fast
	cfg.Optimization = Optimization{SplitChunks: base.Optimization.SplitChunks.Clone()}
	cfg.DevServer = &DevServer{
		Host:               p.Config.Host,
		Port:               p.Config.Port,
		HistoryAPIFallback: true,
		Index:              "/" + IndexFile,
		Hot:                true,
		DisableHostCheck:   true,
		ContentBase:        base.Output.Path,
		ServeIndex:         false,
	}

	return cfg.WithPlugins(HTMLPlugin(template, htmlFilename(base))), nil
}

// Production is the standard production build.
func (p *Project) Production(env Env) (Configuration, error) {
	base, err := p.Base(env, ModeProduction)
	if err != nil {
		return Configuration{}, err
	}
	entry, err := p.entry()
	if err != nil {
		return Configuration{}, err
	}
	template, err := p.path(p.Config.BuildTemplate)
	if err != nil {
		return Configuration{}, err
	}

	cfg := base.Clone()
	cfg.Entry = entry

	return cfg.WithPlugins(HTMLPlugin(template, htmlFilename(base))), nil
}

// Optimized is the production build with scoped packages and the chart library
// rewritten to their tree-shakeable builds. It fails if the registry namespace is missing.
func (p *Project) Optimized(env Env) (Configuration, error) {
	prod, err := p.Production(env)
	if err != nil {
		return Configuration{}, err
	}
	scoped, err := p.Aliases()
	if err != nil {
		return Configuration{}, err
	}

	chart := p.Config.Chart
	cfg, err := prod.WithAliases(scoped, ChartAlias(chart))
	if err != nil {
		return Configuration{}, err
	}

	return cfg.WithRules(ChartRules(chart)...), nil
}

// Analyze wraps a production flavor with the bundle analyzer, nothing else changes.
func (p *Project) Analyze(env Env, flavor Flavor) (Configuration, error) {
	var cfg Configuration
	var err error
	if flavor == FlavorOptimized {
		cfg, err = p.Optimized(env)
	} else {
		cfg, err = p.Production(env)
	}
	if err != nil {
		return Configuration{}, err
	}
	return cfg.WithPlugins(BundleAnalyzerPlugin()), nil
}

// Aliases scans the project registry namespace, see registry.Scan.
func (p *Project) Aliases() (registry.AliasMap, error) {
	root, err := p.RootDir()
	if err != nil {
		return nil, err
	}
	return registry.Scan(root, p.Config.Namespace)
}

// ChartAlias points the chart library at its es module build.
func ChartAlias(chart string) registry.AliasMap {
	return registry.AliasMap{chart: registry.Specifier(chart, "es")}
}

// ChartRules returns the two rules for the chart library es build. The entry file is
// only marked side effect free, the second rule compiles every other file and excludes
// exactly that entry so it is not compiled twice.
func ChartRules(chart string) []Rule {
	esDir := `node_modules[\\/]` + regexp.QuoteMeta(chart) + `[\\/]es[\\/]`
	entry := Pattern(esDir + `index\.js$`)
	sideEffects := false

	return []Rule{
		{
			Test:        `\.js$`,
			Include:     entry,
			SideEffects: &sideEffects,
			Use:         []Loader{babelLoader()},
		},
		{
			Test:    `\.js$`,
			Include: Pattern(esDir),
			Exclude: entry,
			Use:     []Loader{babelLoader()},
		},
	}
}

func htmlFilename(base Configuration) string {
	return filepath.Join(base.Output.Path, IndexFile)
}
