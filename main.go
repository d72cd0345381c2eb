package main

import "github.com/datastax/data-api-query/cmd"

func main() {
	cmd.Execute()
}
