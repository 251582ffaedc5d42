// Package main is the entry point for the rmds CLI.
package main

import "rmds.dev/pkg/rmds/cmd"

func main() {
	cmd.Execute()
}
