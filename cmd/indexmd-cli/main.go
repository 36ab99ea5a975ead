package main

import "indexmd/cmd/indexmd-cli/cmd"

func main() {
	cmd.Execute()
}
