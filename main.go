/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package main

import "allocator/cmd"

func main() {
	cmd.Execute()
}
