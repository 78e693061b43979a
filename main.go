package main

import "github.com/ingo-eichhorst/deadcode/cmd"

func main() {
	cmd.Execute()
}
