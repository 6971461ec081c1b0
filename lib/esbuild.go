package lib

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

var loaders = map[string]api.Loader{
	"base64":     api.LoaderBase64,
	"binary":     api.LoaderBinary,
	"copy":       api.LoaderCopy,
	"css":        api.LoaderCSS,
	"dataurl":    api.LoaderDataURL,
	"default":    api.LoaderDefault,
	"empty":      api.LoaderEmpty,
	"file":       api.LoaderFile,
	"global-css": api.LoaderGlobalCSS,
	"js":         api.LoaderJS,
	"json":       api.LoaderJSON,
	"jsx":        api.LoaderJSX,
	"local-css":  api.LoaderLocalCSS,
	"text":       api.LoaderText,
	"ts":         api.LoaderTS,
	"tsx":        api.LoaderTSX,
}

func ParseLoader(text string) (api.Loader, error) {
	if l, ok := loaders[text]; ok {
		return l, nil
	}
	return api.LoaderNone, fmt.Errorf(
		"invalid loader value: %q, valid values are \"base64\", \"binary\", \"copy\", \"css\", \"dataurl\", \"empty\", \"file\", \"global-css\", \"js\", \"json\", \"jsx\", \"local-css\", \"text\", \"ts\", or \"tsx\"", text,
	)
}

func StringifyLoader(loader api.Loader) (string, error) {
	for name, l := range loaders {
		if l == loader {
			return name, nil
		}
	}
	return "", errors.New("invalid loader")
}

var targets = map[string]api.Target{
	"es5":    api.ES5,
	"es6":    api.ES2015,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"es2023": api.ES2023,
	"es2024": api.ES2024,
	"esnext": api.ESNext,
}

func ParseBrowserTarget(customBrowserTarget string) (api.Target, error) {
	name := strings.ToLower(strings.TrimSpace(customBrowserTarget))
	if name == "" || name == "default" || name == "none" {
		return api.DefaultTarget, nil
	}
	if t, ok := targets[name]; ok {
		return t, nil
	}
	return api.DefaultTarget, fmt.Errorf("unsupported target: %q, valid targets are \"es5\", \"es6\", \"es2015\", \"es2016\", \"es2017\", \"es2018\", \"es2019\", \"es2020\", \"es2021\", \"es2022\", \"es2023\", \"es2024\", \"esnext\", \"default\"", customBrowserTarget)
}

var engines = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"deno":    api.EngineDeno,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"hermes":  api.EngineHermes,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"node":    api.EngineNode,
	"opera":   api.EngineOpera,
	"rhino":   api.EngineRhino,
	"safari":  api.EngineSafari,
}

// ParseEngines converts browserslist like {chrome:63} pairs to esbuild engines, sorted by name
func ParseEngines(versions map[string]string) ([]api.Engine, error) {
	names := make([]string, 0, len(versions))
	for name := range versions {
		names = append(names, name)
	}
	slices.Sort(names)

	result := make([]api.Engine, 0, len(names))
	for _, name := range names {
		engine, ok := engines[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unsupported engine: %q, valid engines are \"chrome\", \"deno\", \"edge\", \"firefox\", \"hermes\", \"ie\", \"ios\", \"node\", \"opera\", \"rhino\", \"safari\"", name)
		}
		result = append(result, api.Engine{Name: engine, Version: versions[name]})
	}
	return result, nil
}

func StringifyEngine(engine api.EngineName) (string, error) {
	for name, e := range engines {
		if e == engine {
			return name, nil
		}
	}
	return "", errors.New("invalid engine")
}
