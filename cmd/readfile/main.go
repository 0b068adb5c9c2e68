package main

import (
	"os"

	"github.com/dl/readfile/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
