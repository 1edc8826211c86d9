// Command catchment runs the LISFLOOD-FP-style shallow-water catchment
// flow-routing model, or validates a configuration without running it.
package main

import (
	"fmt"
	"os"

	"github.com/dvalters/catchmentfp/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
