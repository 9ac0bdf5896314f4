package main

import "github.com/OpenTraceLab/easyeda2kicad/cmd/easyeda2kicad/cmd"

func main() {
	cmd.Execute()
}
