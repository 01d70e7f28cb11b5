package main

import "world-dashboard/cli"

func main() {
	cli.Execute()
}
