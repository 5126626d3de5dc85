package main

import "github.com/spendtrack/spendtrack-services/cmd"

func main() {
	cmd.Execute()
}
