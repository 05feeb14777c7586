package main

import "geticard_backend/internal/app"

func main() {
	app.Run()
}
