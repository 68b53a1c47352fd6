package main

import (
	"github.com/mnemo-labs/mnemo-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
