// Command promptc is a local CLI front-end for the prompt compiler: it
// reads a seed pack from disk, runs one compilation, and prints the
// rendered prompt, plus its lint/injection report when --report is set.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
