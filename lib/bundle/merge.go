package bundle

import (
	"maps"
	"slices"

	"dario.cat/mergo"

	"github.com/natrim/layerpack/lib/registry"
)

// MergeAliases merges alias layers in order, a later layer wins on the same key.
func MergeAliases(layers ...registry.AliasMap) (registry.AliasMap, error) {
	merged := make(registry.AliasMap)
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, layer, mergo.WithOverride); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Clone returns a deep copy, the copy shares nothing with c.
func (c Configuration) Clone() Configuration {
	clone := c
	clone.Entry = maps.Clone(c.Entry)
	clone.Externals = maps.Clone(c.Externals)
	clone.Engines = maps.Clone(c.Engines)
	clone.Optimization = c.Optimization.Clone()
	clone.Resolve = c.Resolve.Clone()
	clone.Module = Module{Rules: cloneRules(c.Module.Rules)}
	if c.Plugins != nil {
		clone.Plugins = make([]Plugin, len(c.Plugins))
		for i, p := range c.Plugins {
			clone.Plugins[i] = p.Clone()
		}
	}
	if c.DevServer != nil {
		ds := *c.DevServer
		clone.DevServer = &ds
	}
	return clone
}

func (o Optimization) Clone() Optimization {
	return Optimization{
		Minimize:    o.Minimize,
		Minimizer:   slices.Clone(o.Minimizer),
		SplitChunks: o.SplitChunks.Clone(),
	}
}

func (s *SplitChunks) Clone() *SplitChunks {
	if s == nil {
		return nil
	}
	return &SplitChunks{Chunks: s.Chunks, CacheGroups: maps.Clone(s.CacheGroups)}
}

func (r Resolve) Clone() Resolve {
	return Resolve{
		Extensions: slices.Clone(r.Extensions),
		Alias:      r.Alias.Clone(),
		Plugins:    slices.Clone(r.Plugins),
	}
}

func (r Rule) Clone() Rule {
	clone := r
	if r.SideEffects != nil {
		v := *r.SideEffects
		clone.SideEffects = &v
	}
	if r.Use != nil {
		clone.Use = make([]Loader, len(r.Use))
		for i, l := range r.Use {
			clone.Use[i] = l.Clone()
		}
	}
	return clone
}

func (l Loader) Clone() Loader {
	clone := l
	if l.Options != nil {
		opts := *l.Options
		if l.Options.Modules != nil {
			m := *l.Options.Modules
			opts.Modules = &m
		}
		clone.Options = &opts
	}
	return clone
}

func (p Plugin) Clone() Plugin {
	clone := p
	clone.Definitions = maps.Clone(p.Definitions)
	return clone
}

func cloneRules(rules []Rule) []Rule {
	if rules == nil {
		return nil
	}
	clone := make([]Rule, len(rules))
	for i, r := range rules {
		clone[i] = r.Clone()
	}
	return clone
}

// WithPlugins returns a copy with plugins appended after the existing ones.
func (c Configuration) WithPlugins(plugins ...Plugin) Configuration {
	clone := c.Clone()
	for _, p := range plugins {
		clone.Plugins = append(clone.Plugins, p.Clone())
	}
	return clone
}

// WithRules returns a copy with module rules appended after the existing ones.
func (c Configuration) WithRules(rules ...Rule) Configuration {
	clone := c.Clone()
	clone.Module.Rules = append(clone.Module.Rules, cloneRules(rules)...)
	return clone
}

// WithAliases returns a copy whose resolve aliases are the existing ones overlaid by layers, in order.
func (c Configuration) WithAliases(layers ...registry.AliasMap) (Configuration, error) {
	merged, err := MergeAliases(append([]registry.AliasMap{c.Resolve.Alias}, layers...)...)
	if err != nil {
		return Configuration{}, err
	}
	clone := c.Clone()
	clone.Resolve.Alias = merged
	return clone, nil
}
