package main

import "github.com/mealmax/smoketest/cmd"

func main() {
	cmd.Execute()
}
