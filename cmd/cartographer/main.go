package main

import "github.com/mvp-joe/cartographer/internal/cli"

func main() {
	cli.Execute()
}
