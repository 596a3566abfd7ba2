package main

import "github.com/atharv3903/skyroute/internal/cli"

func main() {
	cli.Execute()
}
