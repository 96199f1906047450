package main

import (
	"github.com/xortim/crier/cmd"
)

func main() {
	cmd.Execute()
}
