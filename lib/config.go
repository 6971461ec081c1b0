package lib

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"dario.cat/mergo"
)

// ConfigKey is the package.json key holding layerpack options
const ConfigKey = "layerpack"

type Config struct {
	Namespace     string
	Chart         string
	SourceDir     string
	Entry         string
	DevTemplate   string
	BuildTemplate string
	Host          string
	Port          int
	Tsconfig      string
	Target        string
	Engines       MapFlags
}

// DefaultConfig returns the options used for anything package.json leaves out
func DefaultConfig() Config {
	return Config{
		Namespace:     "antv",
		Chart:         "bizcharts",
		SourceDir:     "src",
		Entry:         "index.tsx",
		DevTemplate:   "template.index.html",
		BuildTemplate: "template.index.html",
		Host:          "localhost",
		Port:          8080,
		Tsconfig:      "./tsconfig.json",
		Engines:       MapFlags{"chrome": "63"},
	}
}

// ValidPort reports if port is usable, 0 is rejected as FillDefaults would replace it
func ValidPort(port int) bool {
	return port > 0 && port <= 65535
}

type PackageJson map[string]any

func ParsePackageJson(packagePath string) (PackageJson, error) {
	if !FileExists(packagePath) {
		return nil, errors.New("no " + packagePath + " found")
	}

	jsonFile, err := os.ReadFile(packagePath)
	if err != nil {
		return nil, err
	}
	var packageJson PackageJson
	err = json.Unmarshal(jsonFile, &packageJson)
	if err != nil {
		return nil, err
	}

	return packageJson, nil
}

// ParseJsonConfig reads the "layerpack" object of package.json, missing keys get DefaultConfig values
func ParseJsonConfig(packageJson PackageJson) (*Config, error) {
	config := Config{}

	if packageJsonOptions, ok := packageJson[ConfigKey]; ok {
		options, ok := packageJsonOptions.(map[string]any)
		if !ok {
			return &config, errors.New("wrong '" + ConfigKey + "' key in 'package.json', use object: {namespace:antv,chart:bizcharts,...}")
		}

		strs := map[string]*string{
			"namespace":     &config.Namespace,
			"chart":         &config.Chart,
			"sourceDir":     &config.SourceDir,
			"entry":         &config.Entry,
			"devTemplate":   &config.DevTemplate,
			"buildTemplate": &config.BuildTemplate,
			"host":          &config.Host,
			"tsconfig":      &config.Tsconfig,
			"target":        &config.Target,
		}
		for key, dst := range strs {
			if raw, ok := options[key]; ok {
				value, ok := raw.(string)
				if !ok {
					return &config, fmt.Errorf("wrong '%s' key in 'package.json', use string", key)
				}
				// FillDefaults would replace an empty value
				if value == "" && key != "target" {
					return &config, fmt.Errorf("wrong '%s' key in 'package.json', use non-empty string", key)
				}
				*dst = value
			}
		}

		if portRaw, ok := options["port"]; ok {
			port, err := strconv.Atoi(fmt.Sprintf("%v", portRaw))
			if err != nil || !ValidPort(port) {
				return &config, fmt.Errorf("wrong 'port' key in 'package.json': %v, use number 1-65535", portRaw)
			}
			config.Port = port
		}

		if engines, ok := options["engines"]; ok {
			if _, ok = engines.(map[string]any); ok {
				config.Engines = make(MapFlags, len(engines.(map[string]any)))
				for name, version := range engines.(map[string]any) {
					config.Engines[name] = fmt.Sprintf("%v", version)
				}
			} else {
				return &config, errors.New("wrong 'engines' key in 'package.json', use object: {chrome:63,firefox:60,...}")
			}
		}
	}

	if err := config.FillDefaults(); err != nil {
		return &config, err
	}

	return &config, nil
}

// FillDefaults sets every zero option to its DefaultConfig value, engines are replaced as a whole
func (c *Config) FillDefaults() error {
	defaults := DefaultConfig()
	if c.Engines != nil {
		defaults.Engines = nil
	}
	return mergo.Merge(c, defaults)
}
