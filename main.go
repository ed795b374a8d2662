package main

import "docprep/cmd"

func main() {
	cmd.Execute()
}
