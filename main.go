package main

import "github.com/they4kman/hexfield/cmd"

func main() {
	cmd.Execute()
}
