package main

import "github.com/diogo/wallchat/internal/commands"

func main() {
	commands.Execute()
}
