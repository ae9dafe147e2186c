package main

import "github.com/Yates-Labs/gseawrap/cmd"

func main() {
	cmd.Execute()
}
