package main

import (
	"flag"
	"os"

	"github.com/natrim/layerpack/lib"
)

var target = "production"
var envFiles lib.ArrayFlags
var format = "json"
var workDir = ""
var rootDir = ""
var packagePath = "package.json"

var namespace = ""
var chart = ""
var host = ""
var port = 0

var isAliases = false
var isEsbuild = false
var isWatch = false
var isHelp = false
var isVersion = false
var useColor = true
var isDebug = false

var cliEnv lib.MapFlags

func SetupFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(lib.Stderr)
	flag.CommandLine.Usage = func() {
		// nothing, app will print it's stuff
	}

	flag.BoolVar(&isVersion, "version", isVersion, "layerpack version number")
	flag.BoolVar(&isVersion, "v", isVersion, "alias of -version")
	flag.BoolVar(&isHelp, "h", isHelp, "alias of -help")
	flag.BoolVar(&isHelp, "help", isHelp, "this help")
	flag.BoolVar(&useColor, "color", useColor, "colorize output")
	flag.BoolVar(&isDebug, "debug", isDebug, "print diagnostic logs")

	flag.StringVar(&target, "target", target, "configuration to compose: development|production|optimized|analyze|analyze-optimized (or dev, build, prod, op, biz-analyze, op-analyze)")
	flag.StringVar(&target, "t", target, "alias of -target")
	flag.Var(&cliEnv, "env", "environment descriptor pairs, overrides values from -envFile, can have multiple flags, ie. --env=output=build/app")
	flag.Var(&envFiles, "envFile", "dotenv files with the environment descriptor, LAYERPACK_ prefixed keys lose the prefix and are lowercased, later files override earlier ones, can have multiple flags or comma separated values")
	flag.StringVar(&format, "format", format, "output format of the composed configuration: json|yaml")

	flag.StringVar(&workDir, "workDir", workDir, "project directory, defaults to current work directory")
	flag.StringVar(&rootDir, "root", rootDir, "directory holding node_modules, defaults to -workDir")
	flag.StringVar(&packagePath, "package", packagePath, "path to package.json, relative to -workDir")

	flag.StringVar(&namespace, "namespace", namespace, "registry namespace to alias, overrides values from package.json")
	flag.StringVar(&chart, "chart", chart, "chart library to rewrite to its es build, overrides values from package.json")
	flag.StringVar(&host, "host", host, "dev server host, overrides values from package.json")
	flag.IntVar(&port, "port", port, "dev server port, overrides values from package.json")

	flag.BoolVar(&isAliases, "aliases", isAliases, "print only the registry alias map")
	flag.BoolVar(&isEsbuild, "esbuild", isEsbuild, "print the esbuild options the configuration translates to")
	flag.BoolVar(&isWatch, "watch", isWatch, "compose again on registry or package.json changes")
	flag.BoolVar(&isWatch, "w", isWatch, "alias of -watch")
}
