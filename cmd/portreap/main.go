package main

import (
	"os"

	"portreap/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
