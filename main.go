package main

import "github.com/mdrahmanz/curator/cmd"

func main() {
	cmd.Execute()
}
