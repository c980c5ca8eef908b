// Command toon converts between TOON and JSON on the command line.
package main

import (
	"os"

	"roseh.moe/pkg/toon/cmd/toon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
