package main

import "github.com/yz4230/asgard-console/cmd"

func main() {
	cmd.Execute()
}
