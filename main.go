package main

import "github.com/quocvuong92/gpt-cli/cmd"

func main() {
	cmd.Execute()
}
