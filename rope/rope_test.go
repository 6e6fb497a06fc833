package rope_test

import (
	"testing"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/persistringtest"
	"github.com/JarvisCraft/persistring/rope"
)

func TestRopePersistentString(t *testing.T) {
	persistringtest.Run(t, func() persistring.PersistentString { return rope.New() })
}
