package main

import "github.com/ridoystarlord/petadopt/cmd"

func main() {
	cmd.Execute()
}
