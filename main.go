package main

import (
	"os"

	"declres/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args))
}
