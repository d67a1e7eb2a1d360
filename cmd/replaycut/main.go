package main

import "github.com/replaycut/replaycut/internal/cli"

func main() {
	cli.Execute()
}
