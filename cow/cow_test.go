package cow_test

import (
	"testing"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/cow"
	"github.com/JarvisCraft/persistring/persistringtest"
)

func TestCowPersistentString(t *testing.T) {
	persistringtest.Run(t, func() persistring.PersistentString { return cow.New() })
}
