package main

import "donation-manager/cmd"

func main() {
	cmd.Execute()
}
