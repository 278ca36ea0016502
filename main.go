package main

import "github.com/frahmantamala/people-management/cmd"

func main() {
	cmd.Execute()
}
