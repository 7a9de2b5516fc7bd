package main

import "github.com/r-leyton/linepatch/internal/cli"

func main() {
	cli.Execute()
}
