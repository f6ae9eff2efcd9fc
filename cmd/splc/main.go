package main

import (
	"os"

	"github.com/EthanVletter/Compiler-Crew/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
