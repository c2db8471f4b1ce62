package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root when testing, so relative paths (logs/, *.db)
	// resolve the same way they do for the server binary
	//
	//   in some_test.go,
	//   import (
	//     _ "trinetra.xyz/crowd-alerts/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
