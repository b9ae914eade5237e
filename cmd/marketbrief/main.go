package main

import "marketbrief/internal/cli"

func main() {
	cli.Execute()
}
