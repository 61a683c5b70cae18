package main

import "procscope/cmd"

func main() {
	cmd.Execute()
}
