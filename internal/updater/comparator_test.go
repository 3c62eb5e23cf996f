package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigsEqualIgnoringOwner(t *testing.T) {
	a := newConfig("c")
	b := newConfig("c")
	b.Owner = Identity{User: "bob"}

	assert.True(t, configsEqualIgnoringOwner(a, b), "configs differing only in owner must compare equal")
}

func TestConfigsEqualIgnoringOwner_OtherFieldsStillCompared(t *testing.T) {
	a := newConfig("c")
	b := newConfig("c")
	b.NumCpus = a.NumCpus + 1

	assert.False(t, configsEqualIgnoringOwner(a, b))
}

func TestConfigsEqualIgnoringOwner_DoesNotMutateInputs(t *testing.T) {
	a := newConfig("c")
	original := a

	_ = configsEqualIgnoringOwner(a, newConfig("c"))

	assert.Equal(t, original, a, "comparison must not mutate its inputs")
}
