package plugins

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// PathMatcher matches resolved file paths
type PathMatcher interface {
	Matches(path string) bool
}

// resolving marks resolve calls made by the alias plugin itself so it does not alias twice
type resolving struct{}

// AliasPlugin rewrites imports like webpack resolve.alias does: key "pkg" matches "pkg" and "pkg/sub/path".
// Resolved files matching any of sideEffectFree are marked as having no side effects.
func AliasPlugin(aliases map[string]string, sideEffectFree ...PathMatcher) api.Plugin {
	if len(aliases) == 0 && len(sideEffectFree) == 0 {
		return api.Plugin{
			Name: "alias-stub",
			Setup: func(build api.PluginBuild) {
			},
		}
	}

	keys := AliasKeys(aliases)

	// side effect marking needs every resolved path, plain aliasing only the aliased ones
	filter := ".*"
	if len(sideEffectFree) == 0 {
		escaped := make([]string, len(keys))
		for i, k := range keys {
			escaped[i] = regexp.QuoteMeta(k)
		}
		filter = "^(" + strings.Join(escaped, "|") + ")(/.*)?$"
	}

	return api.Plugin{
		Name: "alias",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: filter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if _, ok := args.PluginData.(resolving); ok {
						return api.OnResolveResult{}, nil
					}

					target, aliased := RewriteAlias(aliases, keys, args.Path)
					if !aliased && len(sideEffectFree) == 0 {
						return api.OnResolveResult{}, nil
					}

					result := build.Resolve(target, api.ResolveOptions{
						Importer:   args.Importer,
						Namespace:  args.Namespace,
						ResolveDir: args.ResolveDir,
						Kind:       args.Kind,
						PluginData: resolving{},
					})
					if len(result.Errors) > 0 {
						return api.OnResolveResult{Errors: result.Errors, Warnings: result.Warnings}, nil
					}

					pure := matchesAny(sideEffectFree, result.Path)
					if !aliased && !pure {
						// let esbuild resolve it as usual
						return api.OnResolveResult{}, nil
					}

					resolved := api.OnResolveResult{
						Path:       result.Path,
						External:   result.External,
						Namespace:  result.Namespace,
						Suffix:     result.Suffix,
						PluginData: result.PluginData,
						Warnings:   result.Warnings,
					}
					if pure || !result.SideEffects {
						resolved.SideEffects = api.SideEffectsFalse
					}
					return resolved, nil
				})
		},
	}
}

// AliasKeys returns alias keys longest first, so the most specific alias is tried first
func AliasKeys(aliases map[string]string) []string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return keys
}

// RewriteAlias applies the first matching alias from keys to path
func RewriteAlias(aliases map[string]string, keys []string, path string) (string, bool) {
	for _, k := range keys {
		if path == k {
			return aliases[k], true
		}
		if strings.HasPrefix(path, k+"/") {
			return aliases[k] + path[len(k):], true
		}
	}
	return path, false
}

func matchesAny(matchers []PathMatcher, path string) bool {
	path = filepath.ToSlash(path)
	for _, m := range matchers {
		if m.Matches(path) {
			return true
		}
	}
	return false
}
