package main

import (
	"os"

	"github.com/gsocbuddy/gsoc-buddy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
