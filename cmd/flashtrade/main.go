package main

import "github.com/rustyeddy/flashtrade/internal/cli"

func main() {
	cli.Execute()
}
