package bundle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrUnknownTarget = errors.New("unknown target")

const (
	TargetDevelopment      = "development"
	TargetProduction       = "production"
	TargetOptimized        = "optimized"
	TargetAnalyze          = "analyze"
	TargetAnalyzeOptimized = "analyze-optimized"
)

// Builder turns an environment descriptor into a final configuration.
type Builder func(env Env) (Configuration, error)

var targetAliases = map[string]string{
	"dev":         TargetDevelopment,
	"build":       TargetProduction,
	"prod":        TargetProduction,
	"op":          TargetOptimized,
	"biz-analyze": TargetAnalyze,
	"op-analyze":  TargetAnalyzeOptimized,
}

// Targets lists the canonical target names.
func Targets() []string {
	return []string{TargetDevelopment, TargetProduction, TargetOptimized, TargetAnalyze, TargetAnalyzeOptimized}
}

// NormalizeTarget maps short names (dev, build, op, ...) to canonical ones.
func NormalizeTarget(target string) string {
	target = strings.ToLower(strings.TrimSpace(target))
	if canonical, ok := targetAliases[target]; ok {
		return canonical
	}
	return target
}

// Builder selects the environment builder for target.
func (p *Project) Builder(target string) (Builder, error) {
	switch NormalizeTarget(target) {
	case TargetDevelopment:
		return p.Development, nil
	case TargetProduction:
		return p.Production, nil
	case TargetOptimized:
		return p.Optimized, nil
	case TargetAnalyze:
		return func(env Env) (Configuration, error) {
			return p.Analyze(env, FlavorStandard)
		}, nil
	case TargetAnalyzeOptimized:
		return func(env Env) (Configuration, error) {
			return p.Analyze(env, FlavorOptimized)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q, valid targets are %s", ErrUnknownTarget, target, strings.Join(Targets(), ", "))
	}
}

// Compose builds the final configuration for target.
func (p *Project) Compose(target string, env Env) (Configuration, error) {
	build, err := p.Builder(target)
	if err != nil {
		return Configuration{}, err
	}

	cfg, err := build(env)
	if err != nil {
		return Configuration{}, err
	}

	log.Debug().
		Str("target", NormalizeTarget(target)).
		Str("output", cfg.Output.Path).
		Int("rules", len(cfg.Module.Rules)).
		Int("aliases", len(cfg.Resolve.Alias)).
		Int("plugins", len(cfg.Plugins)).
		Msg("composed configuration")

	return cfg, nil
}
