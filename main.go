package main

import "os"

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		printCmdError(err)
		os.Exit(1)
	}
}
