package main

import "chatstats/cmd/chatstats-cli/cmd"

func main() {
	cmd.Execute()
}
