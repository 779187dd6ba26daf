package main

import "github.com/mcoot/sequencegame/internal/cli"

func main() {
	cli.Execute()
}
