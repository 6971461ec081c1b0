package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/natrim/layerpack/lib"
)

func main() {
	SetupFlags()

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			isHelp = true
		} else {
			lib.PrintError(err)
			os.Exit(1)
		}
	}

	lib.UseColor(useColor)
	lib.SetupLogger(isDebug, useColor)

	if err := run(); err != nil {
		lib.PrintError(err)
		os.Exit(1)
	}
}

func run() error {
	if isHelp {
		help()
		return nil
	}

	if isVersion {
		lib.PrintOk("layerpack version:", lib.ToolVersion())
		return nil
	}

	env, err := makeEnv()
	if err != nil {
		return err
	}

	if isWatch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, env)
	}

	project, err := loadProject()
	if err != nil {
		return err
	}

	return compose(project, env)
}

func help() {
	lib.Print("layerpack composes bundler configurations per environment")
	lib.Print("")
	lib.Print("usage: layerpack [flags]")
	lib.Print("")
	flag.CommandLine.SetOutput(lib.Stdout)
	flag.PrintDefaults()
}
