// Package options configures the compiler (the model name, include
// search paths, target backend selection, and optimization level),
// adapted from the teacher's own api/options package: gx-org-gx
// expresses package-level configuration as a discriminated PackageOption
// interface dispatched through a type-switch. This module has one
// target per compilation -- a single Config, not a per-package
// dispatch table -- so the same idea is expressed with the simpler,
// equally idiomatic closure-over-Config shape: each Option mutates the
// Config being built, and New applies them in order.
package options

// Config is the resolved compiler configuration a driver.Compile call
// is built from.
type Config struct {
	// ModelName is the identifier the analyzer reserves against
	// spec.md §4.5.1 so a model cannot name a variable after itself.
	ModelName string
	// IncludePaths is the ordered list of `-I`/`-include` search
	// directories an external front-end resolves `#include`-like
	// directives against. This module does not itself read the
	// filesystem (spec.md §1); it only records the configured paths.
	// driver.Compile does not pass them on: parser.Parser.Parse
	// receives only the file name and the source text.
	IncludePaths []string
	// OptimizationLevel selects how aggressively optimizer.Optimize
	// runs. 0 disables it (driver.Compile then skips straight from
	// lower.ToMIR to emission); any positive value runs the full
	// partial evaluator of spec.md §4.6.
	OptimizationLevel int
	// TargetBackend names the emitter.Emitter implementation a driver
	// should select; this module defines no backends of its own
	// (spec.md §6), so the value is opaque here.
	TargetBackend string
	// Debug requests verbose diagnostic rendering (source context
	// around each diagnostic, per diag.Render) rather than bare
	// one-line messages.
	Debug bool
}

// Option mutates a Config under construction.
type Option func(*Config)

// New builds a Config from opts, applied in the order given; a later
// option overrides an earlier one that touches the same field.
func New(opts ...Option) *Config {
	c := &Config{OptimizationLevel: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithModelName sets the reserved model-name identifier.
func WithModelName(name string) Option {
	return func(c *Config) { c.ModelName = name }
}

// WithIncludePath appends one include search directory.
func WithIncludePath(path string) Option {
	return func(c *Config) { c.IncludePaths = append(c.IncludePaths, path) }
}

// WithOptimizationLevel sets the optimizer aggressiveness; 0 disables
// optimizer.Optimize entirely.
func WithOptimizationLevel(level int) Option {
	return func(c *Config) { c.OptimizationLevel = level }
}

// WithTargetBackend names the emitter a driver should select.
func WithTargetBackend(name string) Option {
	return func(c *Config) { c.TargetBackend = name }
}

// WithDebug toggles verbose diagnostic rendering.
func WithDebug(on bool) Option {
	return func(c *Config) { c.Debug = on }
}
