package main

import (
	"os"

	"github.com/Soumik-05/talentscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
