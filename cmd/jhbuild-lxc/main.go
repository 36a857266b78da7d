package main

import "jhbuild-lxc/internal/cli"

func main() {
	cli.Execute()
}
