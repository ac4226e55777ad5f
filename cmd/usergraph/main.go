/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

func main() {
	Execute()
}
