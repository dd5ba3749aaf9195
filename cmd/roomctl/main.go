package main

import (
	"github.com/fourline/gameroom/internal/cli"
)

func main() {
	cli.Execute()
}
