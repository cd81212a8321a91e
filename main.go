package main

import "proc-loader/cmd"

func main() {
	cmd.Execute()
}
