// Command logicstore imports raw logic captures into segment blobs and
// queries them from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
