package targets

import (
	"crypto/sha256"
	"encoding/hex"
)

// Options are the plugin options accepted by target inference.
type Options struct {
	// TargetName names the default test-run target. Empty means "test".
	TargetName string
	// CiTargetName names the per-file aggregator target. nil means the
	// default "test-ci"; a pointer to the empty string disables per-file
	// target generation entirely.
	CiTargetName *string
}

// NormalizedOptions is the resolved form of Options, computed once per
// inference invocation. An empty CiTargetName disables atomization.
type NormalizedOptions struct {
	TargetName   string `json:"targetName"`
	CiTargetName string `json:"ciTargetName,omitempty"`
}

// Normalize applies the option defaults.
func Normalize(opts Options) NormalizedOptions {
	normalized := NormalizedOptions{
		TargetName:   DefaultTargetName,
		CiTargetName: DefaultCiTargetName,
	}
	if opts.TargetName != "" {
		normalized.TargetName = opts.TargetName
	}
	if opts.CiTargetName != nil {
		normalized.CiTargetName = *opts.CiTargetName
	}
	return normalized
}

// OptionsHash returns a short stable hash of the normalized options, used
// to key the on-disk store file name.
func OptionsHash(opts NormalizedOptions) string {
	sum := sha256.Sum256([]byte(opts.TargetName + "\x00" + opts.CiTargetName))
	return hex.EncodeToString(sum[:])[:12]
}
