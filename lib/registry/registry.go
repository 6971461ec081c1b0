// Package registry derives import aliases from the packages installed in a
// node_modules scope directory.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNamespaceNotFound is returned when <root>/node_modules/@<namespace> does not exist.
var ErrNamespaceNotFound = errors.New("registry namespace not found")

const (
	LibDir = "lib"
	EsmDir = "esm"
)

// AliasMap maps an import specifier to the specifier the bundler should resolve instead.
type AliasMap map[string]string

// Clone returns a copy of the map, nil stays nil.
func (a AliasMap) Clone() AliasMap {
	if a == nil {
		return nil
	}
	c := make(AliasMap, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Scope normalizes a namespace to its "@scope" form.
func Scope(namespace string) string {
	return "@" + strings.TrimPrefix(namespace, "@")
}

// Dir returns the scope directory scanned for namespace under root.
func Dir(root, namespace string) string {
	return filepath.Join(root, "node_modules", Scope(namespace))
}

// Scan lists every package directory under <root>/node_modules/@<namespace> and maps
// "@<namespace>/<pkg>/lib" to "@<namespace>/<pkg>/esm". The esm counterpart is not checked.
func Scan(root, namespace string) (AliasMap, error) {
	dir := Dir(root, namespace)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNamespaceNotFound, dir, err)
		}
		return nil, err
	}

	scope := Scope(namespace)
	aliases := make(AliasMap, len(entries))
	for _, entry := range entries {
		if !isPackageDir(dir, entry) {
			continue
		}
		aliases[Specifier(scope, entry.Name(), LibDir)] = Specifier(scope, entry.Name(), EsmDir)
	}

	log.Debug().Str("dir", dir).Int("packages", len(aliases)).Msg("scanned registry namespace")

	return aliases, nil
}

// Specifier joins import path segments with "/" regardless of OS.
func Specifier(parts ...string) string {
	return strings.Join(parts, "/")
}

// pnpm and workspaces link packages in, so a symlink to a directory counts
func isPackageDir(dir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	stat, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && stat.IsDir()
}
