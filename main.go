package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/edgeplan/edgeplan/cmd"
)

func main() {
	cmd.Execute()
}
