package main

import "github.com/kamal-hamza/ax-cli/cmd"

func main() {
	cmd.Execute()
}
