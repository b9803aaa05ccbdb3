package main

import "github.com/DrSkyle/tfgrant/cmd/tfgrant/commands"

func main() {
	commands.Execute()
}
