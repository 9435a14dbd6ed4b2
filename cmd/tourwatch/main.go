package main

import (
	"github.com/tourwatch/tourwatch/internal/cli"
)

func main() {
	cli.Execute()
}
