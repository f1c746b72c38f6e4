package main

import (
	"bench-analytics/internal/cli"
)

// main starts the benchctl CLI by delegating to the cobra root command.
func main() {
	cli.Execute()
}
