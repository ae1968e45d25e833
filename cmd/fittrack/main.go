// Command fittrack is the offline fitness tracker: a local HTTP API plus
// terminal commands over the same on-device store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
