package main

import (
	"fmt"
	"os"

	"github.com/aloftlabs/aloft/cmd/aloft/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
