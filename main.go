package main

import (
	"os"
)

func main() {
	// Cobra prints the error itself
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
