package main

import "github.com/kodkafa/nataly/internal/cli"

func main() {
	cli.Execute()
}
