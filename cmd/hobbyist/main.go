// Command hobbyist manages hobbies and persons from the command line and
// serves them over HTTP.
package main

import (
	"os"

	"github.com/mesh-intelligence/hobbyist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
