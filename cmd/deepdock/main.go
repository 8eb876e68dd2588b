// deepdock is the command-line client for the DeepDock affinity service.
package main

import "github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/cli"

func main() {
	cli.Execute()
}
