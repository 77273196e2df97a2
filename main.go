package main

import (
	"github.com/tannerpowell/catch/cmd"
)

func main() {
	cmd.Execute()
}
