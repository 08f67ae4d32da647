package main

import (
	"os"

	"loan-schedule/cmd/emi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
