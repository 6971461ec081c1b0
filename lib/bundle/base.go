// Package bundle composes bundler configurations per environment.
//
// A Project builds the base configuration once per call, environment builders
// layer their entries, aliases, rules and plugins on a copy of it. Nothing is
// cached between calls: every call rescans the package registry.
package bundle

import (
	"encoding/json"
	"path/filepath"

	"github.com/natrim/layerpack/lib"
)

const (
	EntryName      = "bundle"
	OutputFilename = "[name].[chunkhash].js"
	IndexFile      = "index.html"

	ruleExclude = `(node_modules|bower_components)`
	commonsTest = `[\\/]node_modules[\\/](react|react-dom)[\\/]`
)

// Project holds what the builders need to know about the application being bundled.
type Project struct {
	// WorkDir is where relative paths resolve from, empty means the process working directory.
	WorkDir string
	// Root holds node_modules for alias scanning, empty means WorkDir.
	Root   string
	Config lib.Config
}

// NewProject returns a project rooted at workDir, config zero values are filled with defaults.
func NewProject(workDir string, config lib.Config) (*Project, error) {
	if err := config.FillDefaults(); err != nil {
		return nil, err
	}
	return &Project{WorkDir: workDir, Config: config}, nil
}

func (p *Project) dir() (string, error) {
	return lib.WorkDir(p.WorkDir)
}

// RootDir is the directory holding node_modules.
func (p *Project) RootDir() (string, error) {
	if p.Root != "" {
		return lib.WorkDir(p.Root)
	}
	return p.dir()
}

// OutputDir resolves the env output path against the working directory.
func (p *Project) OutputDir(env Env) (string, error) {
	dir, err := p.dir()
	if err != nil {
		return "", err
	}
	return lib.ResolvePath(dir, env.Output()), nil
}

func (p *Project) path(parts ...string) (string, error) {
	dir, err := p.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{dir}, parts...)...), nil
}

// Base builds the configuration every environment starts from.
func (p *Project) Base(env Env, mode Mode) (Configuration, error) {
	outputDir, err := p.OutputDir(env)
	if err != nil {
		return Configuration{}, err
	}

	cfg := Configuration{
		Mode:  mode,
		Cache: true,
		Output: Output{
			Path:     outputDir,
			Filename: OutputFilename,
		},
		Optimization: Optimization{
			Minimize:  true,
			Minimizer: []Minimizer{{Name: "terser", ExtractComments: false}},
			SplitChunks: &SplitChunks{
				Chunks: "all",
				CacheGroups: map[string]CacheGroup{
					"commons": {
						Test:               commonsTest,
						Name:               "commons",
						ReuseExistingChunk: true,
						Chunks:             "all",
					},
				},
			},
		},
		Resolve: Resolve{
			Extensions: []string{".js", ".ts", ".tsx", ".json", ".txt"},
			Plugins:    []ResolvePlugin{{Name: "tsconfig-paths", ConfigFile: p.Config.Tsconfig}},
		},
		Module: Module{
			Rules: []Rule{
				{
					Test:    `\.ts$|\.tsx$`,
					Exclude: ruleExclude,
					Use:     []Loader{babelLoader()},
				},
				{
					Test:    `\.less$`,
					Exclude: ruleExclude,
					Use: []Loader{
						{Loader: "style-loader"},
						{Loader: "css-loader", Options: &LoaderOptions{
							Modules: &CSSModules{LocalIdentName: "[name]_[local]_[hash:base64:5]"},
						}},
						{Loader: "less-loader"},
					},
				},
			},
		},
		Engines: map[string]string(p.Config.Engines.Clone()),
		Plugins: []Plugin{DefinePlugin(mode)},
	}

	if mode != ModeProduction {
		cfg.Devtool = "source-map"
	}

	return cfg, nil
}

func babelLoader() Loader {
	return Loader{Loader: "babel-loader", Options: &LoaderOptions{CacheDirectory: true}}
}

// DefinePlugin injects NODE_ENV for the build mode, the process environment is never read.
func DefinePlugin(mode Mode) Plugin {
	value, _ := json.Marshal(mode.NodeEnv())
	return Plugin{
		Kind:        PluginDefine,
		Definitions: map[string]string{"process.env.NODE_ENV": string(value)},
	}
}

// HTMLPlugin hands template and output filename to the html templating step.
func HTMLPlugin(template, filename string) Plugin {
	return Plugin{Kind: PluginHTML, Template: template, Filename: filename, Inject: true}
}

func BundleAnalyzerPlugin() Plugin {
	return Plugin{Kind: PluginBundleAnalyzer}
}
