package main

import "jsonbrowse/cmd/jsonbrowse-cli/cmd"

func main() {
	cmd.Execute()
}
