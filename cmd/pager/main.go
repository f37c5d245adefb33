// Command pager seeds, indexes and pages through the demo collections from the terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openMongo).Execute(); err != nil {
		os.Exit(1)
	}
}
