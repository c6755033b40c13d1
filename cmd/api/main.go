package main

import "github.com/mesametamaarkhan/theekkardo/internal/app"

func main() {
	app.Run()
}
