package main

import (
	"log"

	"github.com/shopmono/storefront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
