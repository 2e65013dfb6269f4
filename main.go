package main

import (
	"github.com/solrkit/solrkit/lib/cmd"
)

func main() {

	cmd.Execute()
}
