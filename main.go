package main

import (
	"embed"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/polyview/pkg/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	conf, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	app := newApp(conf)

	err = wails.Run(&options.App{
		Title:  "Polyview",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 24, G: 24, B: 28, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		app.log.WithError(err).Fatal("viewer exited")
	}
}
