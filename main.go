package main

import "github.com/racestory/racestory-analysis-go/cmd"

func main() {
	cmd.Execute()
}
