package main

import "go-nutriscan/cmd/nutriscan/cmd"

func main() {
	cmd.Execute()
}
