package bundle

import (
	"path/filepath"
	"regexp"

	"github.com/natrim/layerpack/lib/registry"
)

// Mode is the build posture, it drives minification, source maps and NODE_ENV
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// NodeEnv is the value injected as process.env.NODE_ENV, anything but development is production.
func (m Mode) NodeEnv() string {
	if m == ModeDevelopment {
		return string(ModeDevelopment)
	}
	return string(ModeProduction)
}

// Env is the caller supplied environment descriptor (ie. webpack --env key=value pairs)
type Env map[string]string

const (
	OutputKey     = "output"
	DefaultOutput = "./dist"
)

// Output returns the slash separated output path or the default.
func (e Env) Output() string {
	if out, ok := e[OutputKey]; ok {
		return out
	}
	return DefaultOutput
}

// Configuration is the composed bundler configuration.
// Builders never modify a Configuration they receive, they Clone and extend.
type Configuration struct {
	Mode         Mode              `json:"mode" yaml:"mode"`
	Devtool      string            `json:"devtool,omitempty" yaml:"devtool,omitempty"`
	Cache        bool              `json:"cache" yaml:"cache"`
	Entry        map[string]string `json:"entry,omitempty" yaml:"entry,omitempty"`
	Output       Output            `json:"output" yaml:"output"`
	Externals    map[string]string `json:"externals" yaml:"externals"`
	Optimization Optimization      `json:"optimization" yaml:"optimization"`
	Resolve      Resolve           `json:"resolve" yaml:"resolve"`
	Module       Module            `json:"module" yaml:"module"`
	Engines      map[string]string `json:"engines,omitempty" yaml:"engines,omitempty"`
	Plugins      []Plugin          `json:"plugins" yaml:"plugins"`
	DevServer    *DevServer        `json:"devServer,omitempty" yaml:"devServer,omitempty"`
}

type Output struct {
	Path     string `json:"path" yaml:"path"`
	Filename string `json:"filename" yaml:"filename"`
}

type Optimization struct {
	Minimize    bool         `json:"minimize,omitempty" yaml:"minimize,omitempty"`
	Minimizer   []Minimizer  `json:"minimizer,omitempty" yaml:"minimizer,omitempty"`
	SplitChunks *SplitChunks `json:"splitChunks,omitempty" yaml:"splitChunks,omitempty"`
}

type Minimizer struct {
	Name            string `json:"name" yaml:"name"`
	ExtractComments bool   `json:"extractComments" yaml:"extractComments"`
}

type SplitChunks struct {
	Chunks      string                `json:"chunks" yaml:"chunks"`
	CacheGroups map[string]CacheGroup `json:"cacheGroups" yaml:"cacheGroups"`
}

// CacheGroup extracts modules matching Test into one shared chunk.
type CacheGroup struct {
	Test               Pattern `json:"test" yaml:"test"`
	Name               string  `json:"name" yaml:"name"`
	ReuseExistingChunk bool    `json:"reuseExistingChunk" yaml:"reuseExistingChunk"`
	Chunks             string  `json:"chunks" yaml:"chunks"`
}

type Resolve struct {
	Extensions []string          `json:"extensions" yaml:"extensions"`
	Alias      registry.AliasMap `json:"alias,omitempty" yaml:"alias,omitempty"`
	Plugins    []ResolvePlugin   `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

type ResolvePlugin struct {
	Name       string `json:"name" yaml:"name"`
	ConfigFile string `json:"configFile,omitempty" yaml:"configFile,omitempty"`
}

type Module struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Rule applies the Use loader chain to files matching Test and Include but not Exclude.
// SideEffects set to false marks matching files as safe to drop when unused.
type Rule struct {
	Test        Pattern  `json:"test" yaml:"test"`
	Include     Pattern  `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude     Pattern  `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	SideEffects *bool    `json:"sideEffects,omitempty" yaml:"sideEffects,omitempty"`
	Use         []Loader `json:"use" yaml:"use"`
}

// Matches reports if the rule applies to the file path, a rule with an invalid pattern matches nothing.
func (r Rule) Matches(path string) bool {
	m, err := r.Compile()
	if err != nil {
		return false
	}
	return m.Matches(path)
}

// Compile compiles the rule patterns once, for matching many paths.
func (r Rule) Compile() (*RuleMatcher, error) {
	m := &RuleMatcher{}
	var err error
	if m.test, err = r.Test.Regexp(); err != nil {
		return nil, err
	}
	if r.Include != "" {
		if m.include, err = r.Include.Regexp(); err != nil {
			return nil, err
		}
	}
	if r.Exclude != "" {
		if m.exclude, err = r.Exclude.Regexp(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RuleMatcher is a Rule with compiled patterns.
type RuleMatcher struct {
	test    *regexp.Regexp
	include *regexp.Regexp
	exclude *regexp.Regexp
}

func (m *RuleMatcher) Matches(path string) bool {
	path = filepath.ToSlash(path)
	if !m.test.MatchString(path) {
		return false
	}
	if m.include != nil && !m.include.MatchString(path) {
		return false
	}
	if m.exclude != nil && m.exclude.MatchString(path) {
		return false
	}
	return true
}

// SideEffectFree reports if the rule explicitly marks its files as side effect free.
func (r Rule) SideEffectFree() bool {
	return r.SideEffects != nil && !*r.SideEffects
}

type Loader struct {
	Loader  string         `json:"loader" yaml:"loader"`
	Options *LoaderOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

type LoaderOptions struct {
	CacheDirectory bool        `json:"cacheDirectory,omitempty" yaml:"cacheDirectory,omitempty"`
	Modules        *CSSModules `json:"modules,omitempty" yaml:"modules,omitempty"`
}

type CSSModules struct {
	LocalIdentName string `json:"localIdentName" yaml:"localIdentName"`
}

type PluginKind string

const (
	PluginDefine         PluginKind = "define"
	PluginHTML           PluginKind = "html"
	PluginBundleAnalyzer PluginKind = "bundle-analyzer"
)

// Plugin is an instrumentation step run against the bundling pipeline.
// Fields are used depending on Kind.
type Plugin struct {
	Kind        PluginKind        `json:"kind" yaml:"kind"`
	Definitions map[string]string `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Template    string            `json:"template,omitempty" yaml:"template,omitempty"`
	Filename    string            `json:"filename,omitempty" yaml:"filename,omitempty"`
	Inject      bool              `json:"inject,omitempty" yaml:"inject,omitempty"`
}

type DevServer struct {
	Host               string `json:"host" yaml:"host"`
	Port               int    `json:"port" yaml:"port"`
	HistoryAPIFallback bool   `json:"historyApiFallback" yaml:"historyApiFallback"`
	Index              string `json:"index" yaml:"index"`
	Hot                bool   `json:"hot" yaml:"hot"`
	DisableHostCheck   bool   `json:"disableHostCheck" yaml:"disableHostCheck"`
	ContentBase        string `json:"contentBase" yaml:"contentBase"`
	ServeIndex         bool   `json:"serveIndex" yaml:"serveIndex"`
}

// Pattern is a regular expression matched against slash separated file paths.
type Pattern string

// MatchString reports if the pattern matches, an invalid pattern matches nothing.
func (p Pattern) MatchString(s string) bool {
	re, err := p.Regexp()
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func (p Pattern) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile(string(p))
}
