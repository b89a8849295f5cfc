package main

import (
	"os"

	"tarediiran-industries.com/bikeshare-tools/internal/explorer"
)

func main() {
	os.Exit(explorer.Main(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
