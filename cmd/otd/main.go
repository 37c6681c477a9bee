package main

import "github.com/OpenTraceLab/OpenTraceDAQ/cmd/otd/cmd"

func main() {
	cmd.Execute()
}
