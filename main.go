package main

import "github.com/Manu343726/brainfuck/cmd"

func main() {
	cmd.Execute()
}
