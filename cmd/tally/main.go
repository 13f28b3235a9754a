package main

import (
	"context"
	"os"

	"github.com/thenoetrevino/tally/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background()))
}
