package flatrope_test

import (
	"testing"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/flatrope"
	"github.com/JarvisCraft/persistring/persistringtest"
)

func TestFlatropePersistentString(t *testing.T) {
	persistringtest.Run(t, func() persistring.PersistentString { return flatrope.New() })
}
