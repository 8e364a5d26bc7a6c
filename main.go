// Package main is the entry point for the truthcheck CLI.
package main

import "truthcheck.dev/pkg/truthcheck/cmd"

func main() {
	cmd.Execute()
}
