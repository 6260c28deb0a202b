package main

import (
	"os"

	"github.com/dpshade/luma/internal/cli"
	"github.com/dpshade/luma/internal/ui"
)

var version = "0.1.0"

func main() {
	cli.Version = version
	root := cli.NewRootCmd(cli.DefaultBuilder, ui.Run)
	os.Exit(cli.Execute(root, os.Stderr))
}
