package main

import "togglcal/cmd"

func main() {
	cmd.Run()
}
