package main

import "github.com/Philip-Ajayi/SHC/cmd/server/cmd"

func main() {
	cmd.Execute()
}
