package main

import "github.com/ygelfand/vidstrip/cmd"

func main() {
	cmd.Execute()
}
