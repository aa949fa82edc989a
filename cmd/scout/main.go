// Command scout manages robotics competition scouting data.
package main

import (
	"os"

	"github.com/roach88/scout/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
