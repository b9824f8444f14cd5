package main

import "github.com/ethanKlein/trippy-sequencer/cmd"

func main() {
	cmd.Execute()
}
