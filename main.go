package main

import "library-doctor/cmd"

func main() {
	cmd.Execute()
}
