/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/lsbmp/cmd/lsbmp/cmd"
)

func main() {
	cmd.Execute()
}
