package main

import "github.com/batiplan/batiplan/cmd"

func main() {
	cmd.Execute()
}
