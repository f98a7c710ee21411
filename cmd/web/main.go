package main

import "sakanly_backend/internal/app"

func main() {
	app.Run()
}
