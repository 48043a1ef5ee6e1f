package main

import (
	"os"

	"github.com/Chirchirp/Interview-Coach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
