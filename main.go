package main

import "github.com/wamphlett/spotify-pattern-controller/commands"

func main() {
	commands.Execute()
}
