package main

import "github.com/lepinkainen/manga-autofill/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
