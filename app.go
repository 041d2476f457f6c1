package main

import "github.com/masmgr/wordhist/cmd"

func main() {
	cmd.Run()
}
