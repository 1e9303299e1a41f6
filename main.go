package main

import cmd "github.com/Keyur279/Sia-Cli-tool/cmd/siacli"

func main() {
	cmd.Execute()
}
