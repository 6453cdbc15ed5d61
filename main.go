package main

import (
	"github.com/luma/minicoap/cmd"
)

func main() {
	cmd.Execute()
}
