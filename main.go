package main

import (
	"github.com/csl-go/citeproc/cmd"
)

func main() {
	cmd.Execute()
}
