package main

import "github.com/jsphweid/chordmap/cmd"

func main() {
	cmd.Execute()
}
