package main

import "github.com/tendhq/tend/cmd"

func main() {
	cmd.Execute()
}
