package main

import (
	"fmt"
	"os"

	"github.com/harrison/bookbinder/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to generate book: %v\n", err)
		os.Exit(1)
	}
}
