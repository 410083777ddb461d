package main

import "smartctx/cmd/smartctx-cli/cmd"

func main() {
	cmd.Execute()
}
