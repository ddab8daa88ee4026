package main

import "github.com/kestrelsec/xward/internal/cli"

func main() {
	cli.Execute()
}
