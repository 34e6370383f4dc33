package main

import (
	"fmt"
	"log"

	"rfidosc/cmd"
)

var myBuild string

func main() {
	if myBuild != "" {
		cmd.Version = myBuild
	}
	fmt.Printf("rfidosc build %s\n", cmd.Version)

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
