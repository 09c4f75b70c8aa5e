package main

import "github.com/Egor213/LogTrail/internal/app"

func main() {
	app.Run()
}
