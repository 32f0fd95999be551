package main

import "github.com/wavely-app/sessionkit/cmd/sessionctl/cmd"

func main() {
	cmd.Execute()
}
