package delta_test

import (
	"testing"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/delta"
	"github.com/JarvisCraft/persistring/persistringtest"
)

func TestDeltaPersistentString(t *testing.T) {
	persistringtest.Run(t, func() persistring.PersistentString { return delta.New() })
}
