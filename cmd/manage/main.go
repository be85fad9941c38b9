package main

import "github.com/elisiyan/cmd/manage/commands"

func main() {
	commands.Execute()
}
