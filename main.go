package main

import (
	"fwsim/cmd"
	"fwsim/infrastructure/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Logger.Fatalf("failed to execute command: %+v", err)
	}
}
