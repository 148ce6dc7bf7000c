package main

import "github.com/bloodmagesoftware/floorplan/cmd"

func main() {
	cmd.Execute()
}
