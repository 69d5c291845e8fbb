package main

import (
	"github.com/gridhost/vhostd/cmd/cli"
	"github.com/gridhost/vhostd/config"
)

var Version string

func main() {
	config.Version = Version

	if err := cli.Create().Execute(); err != nil {
		panic(err)
	}
}
