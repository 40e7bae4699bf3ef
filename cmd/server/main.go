package main

import "gestorpro/internal/cmd"

func main() {
	cmd.Execute()
}
