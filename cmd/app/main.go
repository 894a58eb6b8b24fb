package main

import (
	"github.com/mustachio/server/internal/app"
	"github.com/mustachio/server/internal/config"
)

func main() {
	app.Go(config.Load())
}
