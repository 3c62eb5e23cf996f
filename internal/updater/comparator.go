package updater

import "github.com/google/go-cmp/cmp"

// normalizeOwner returns a copy of cfg with Owner replaced by its zero
// value, so owner-identity stamping performed between submission and
// execution does not affect equality.
func normalizeOwner(cfg TaskConfig) TaskConfig {
	normalized := cfg
	normalized.Owner = Identity{}
	return normalized
}

// configsEqualIgnoringOwner reports whether a and b are structurally
// equal once both have had their Owner field normalized away. The
// orchestrator may rewrite owner identity between submission and
// execution (e.g. stamping an audit field); a desired config that
// differs only there must still count as already satisfied.
func configsEqualIgnoringOwner(a, b TaskConfig) bool {
	return cmp.Equal(normalizeOwner(a), normalizeOwner(b))
}
