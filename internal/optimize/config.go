package optimize

import (
	"gopkg.in/yaml.v3"
)

// Config gates the handful of specializer behaviors that are
// disabled or configurable by default rather than always-on, the way
// the source VM exposes them as env-var-gated globals. Nothing here
// is read from the environment or a file path directly — LoadConfig
// takes bytes already read by the caller, keeping this package itself
// free of file/env/CLI surface.
type Config struct {
	// EnableCanOpSpecializer turns on folding can/can_s to a constant
	// via the method cache. Off by default: the source VM's comment
	// on optimize_can_op notes it "causes problems... failed to fix
	// up handlers" for code relying on can's side effects.
	EnableCanOpSpecializer bool `yaml:"enable_can_op_specializer"`

	// PreferCallsiteInvocationSpecFallback reproduces a known
	// inconsistency in call devirtualization where an invocation spec
	// that looks like it supports both single and multi dispatch gets
	// resolved as single dispatch. See callopt.ResolveCallee.
	PreferCallsiteInvocationSpecFallback bool `yaml:"prefer_callsite_invocation_spec_fallback"`
}

// DefaultConfig returns the config matching the source VM's
// out-of-the-box defaults: every optional specializer off.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig parses a YAML-encoded Config, starting from
// DefaultConfig so an omitted field keeps its default rather than
// zeroing it.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
