// lottostat - lottery draw frequency tally
//
// lottostat streams a draw history file, counts every winning number and
// reports the most common ones.
package main

import (
	"os"

	"github.com/ccollicutt/lottostat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
