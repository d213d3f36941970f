package main

import "github.com/jsphweid/dosrevive/cmd"

func main() {
	cmd.Execute()
}
