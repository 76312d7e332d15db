package main

import (
	"os"

	"github.com/tripweaver/tripweaver/tripservice"
)

func main() {
	if err := tripservice.Run(); err != nil {
		os.Exit(1)
	}
}
