package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JarvisCraft/persistring/version"
)

func TestRegistryInitialState(t *testing.T) {
	r := version.New("seed")
	require.Equal(t, version.Handle(0), r.Current())
	require.Equal(t, version.Handle(0), r.Latest())
	require.Equal(t, "seed", r.State())
}

func TestRegistryAllocateAndSetCurrent(t *testing.T) {
	r := version.New(0)
	h1 := r.Allocate(1)
	require.Equal(t, version.Handle(1), h1)
	require.Equal(t, version.Handle(0), r.Current(), "allocate must not move the cursor")

	r.SetCurrent(h1)
	require.Equal(t, h1, r.Current())
	require.Equal(t, 1, r.State())
	require.Equal(t, 0, r.StateAt(0))
}

func TestRegistrySwitchRejectsInvalidHandle(t *testing.T) {
	r := version.New("x")
	r.Allocate("y")

	err := r.Switch(99)
	require.Error(t, err)
	require.ErrorIs(t, err, version.ErrInvalidVersion)

	var switchErr *version.SwitchError
	require.ErrorAs(t, err, &switchErr)
	require.Equal(t, version.Handle(99), switchErr.Handle)

	err = r.Switch(-1)
	require.Error(t, err)
	require.ErrorIs(t, err, version.ErrInvalidVersion)
}

func TestRegistrySwitchAccepts(t *testing.T) {
	r := version.New("x")
	h1 := r.Allocate("y")
	require.NoError(t, r.Switch(h1))
	require.Equal(t, h1, r.Current())
	require.Equal(t, "y", r.State())
}
