package main

import (
	"github.com/NVIDIA/recipes-api/pkg/cli"
)

func main() {
	cli.Execute()
}
