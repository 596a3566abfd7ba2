package main

import (
	"fmt"
	"os"

	"github.com/atharv3903/skyroute/internal/cli"
)

// server is shorthand for "skyroute serve".
func main() {
	root := cli.NewRootCmd()
	root.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
