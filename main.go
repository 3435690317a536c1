package main

import (
	"os"

	"github.com/manojkumarbalamurugan16/task/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
