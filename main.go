package main

import "listkit/cmd"

func main() {
	cmd.Execute()
}
