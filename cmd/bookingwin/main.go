package main

import "github.com/example/booking-window/cmd"

func main() {
	cmd.Execute()
}
