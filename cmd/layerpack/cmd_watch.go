package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/natrim/layerpack/lib"
	"github.com/natrim/layerpack/lib/bundle"
	"github.com/natrim/layerpack/lib/registry"
)

const watchDebounce = 100 * time.Millisecond

// watch composes once and again after every debounced change of the registry or package.json,
// every run loads the project and scans the registry from scratch
func watch(ctx context.Context, env bundle.Env) error {
	project, err := loadProject()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)

	pkg, err := packageFile(project)
	if err != nil {
		return err
	}
	paths, err := watchPaths(project)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return err
		}
		lib.PrintInfo("watching:", path)
	}

	if err := compose(project, env); err != nil {
		lib.PrintError(err)
	}

	timer := time.NewTimer(time.Millisecond)
	<-timer.C

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("watch event")
			if !watchedEvent(event, pkg) {
				continue
			}
			lib.PrintItem("Change in", event.Name)
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lib.PrintError(err)
		case <-timer.C:
			lib.PrintReload("Change detected, composing", bundle.NormalizeTarget(target))
			project, err = loadProject()
			if err == nil {
				err = compose(project, env)
			}
			if err != nil {
				lib.PrintError(err)
				continue
			}
			// the namespace directory may have been created since the last run
			if paths, err := watchPaths(project); err == nil {
				for _, path := range paths {
					_ = watcher.Add(path)
				}
			}
		}
	}
}

// packageFile is the package.json path of the project
func packageFile(project *bundle.Project) (string, error) {
	dir, err := lib.WorkDir(project.WorkDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, packagePath), nil
}

// watchPaths lists what exists of: the package.json directory, node_modules and the registry namespace directory.
// package.json is watched through its directory, editors saving by rename would drop a watch on the file itself.
func watchPaths(project *bundle.Project) ([]string, error) {
	pkg, err := packageFile(project)
	if err != nil {
		return nil, err
	}
	root, err := project.RootDir()
	if err != nil {
		return nil, err
	}

	var paths []string
	if dir := filepath.Dir(pkg); lib.DirExists(dir) {
		paths = append(paths, dir)
	}
	if modules := filepath.Join(root, "node_modules"); lib.DirExists(modules) {
		paths = append(paths, modules)
	}
	if scope := registry.Dir(root, project.Config.Namespace); lib.DirExists(scope) {
		paths = append(paths, scope)
	}
	return paths, nil
}

// watchedEvent reports if event should trigger composing, in the package.json directory only package.json counts
func watchedEvent(event fsnotify.Event, pkg string) bool {
	// skip event that has only chmod operation
	if event.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Dir(event.Name) == filepath.Dir(pkg) {
		return filepath.Base(event.Name) == filepath.Base(pkg)
	}
	return true
}
