package main

import (
	"os"

	"github.com/iburimskiy/one137/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
