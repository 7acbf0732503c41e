package main

import (
	"interlink/cmd/handlers"
)

func main() {
	handlers.Execute()
}
