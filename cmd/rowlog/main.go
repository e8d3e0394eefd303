/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/rowlog/rowlog/cmd/rowlog/cmd"
)

func main() {
	cmd.Execute()
}
