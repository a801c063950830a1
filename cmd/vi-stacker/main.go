package main

import (
	"context"
	"os"

	"github.com/lixenwraith/vi-stacker/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
