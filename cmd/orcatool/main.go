package main

import (
	"os"

	"github.com/orcac/orcatool/cmd/orcatool/internal"
)

func main() {
	os.Exit(internal.Execute())
}
