package main

import "github.com/tranvictor/repscan/cmd"

func main() {
	cmd.Execute()
}
