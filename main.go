package main

import "konverge/cmd/cli"

func main() {
	cli.Execute()
}
