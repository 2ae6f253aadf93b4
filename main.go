package main

import "github.com/KaramelBytes/fillmatrix/cmd"

func main() {
	cmd.Execute()
}
