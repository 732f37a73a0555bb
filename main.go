package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	api2 "github.com/typecast/typecast-go/lib/api"
	"github.com/typecast/typecast-go/lib/cli"
	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/loadtest"
	session2 "github.com/typecast/typecast-go/lib/session"
	settings2 "github.com/typecast/typecast-go/lib/settings"
	"github.com/typecast/typecast-go/lib/snapshot"
	"github.com/typecast/typecast-go/lib/utils"
	"github.com/typecast/typecast-go/lib/ws"
)

func main() {
	setupLogger := utils.SetupLogger()
	defer setupLogger.Sync()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "watch":
			cli.RunFromCLI(setupLogger, os.Args[2:])
			return
		case "loadtest":
			loadtest.RunFromCLI(setupLogger, os.Args[2:])
			return
		case "multiload":
			loadtest.RunMultiFromCLI(setupLogger, os.Args[2:])
			return
		}
	}

	retrievedSettings, err := settings2.ReadConfig("")
	if err != nil {
		setupLogger.Fatal("Error reading configuration: " + err.Error())
		return
	}
	validatorEvaluator := validator.New(validator.WithRequiredStructEnabled())

	setupLogger.Info("Starting Typecast...")
	setupLogger.Info("Your Typecast version is " + settings2.GitVersion())

	dataStore, err := utils.GetDB(*retrievedSettings, setupLogger)
	if err != nil {
		setupLogger.Fatal("Error connecting to database: " + err.Error())
		return
	}
	defer dataStore.Close()

	snapshotStore := snapshot.NewStore(dataStore)
	registry := document.NewRegistry(retrievedSettings.DefaultDocumentText)

	hub := ws.NewHub()
	go hub.Run()

	manager := session2.NewManager(setupLogger, hub)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/ws/watch", func(c *fiber.Ctx) error {
		path := c.Query("path")
		if path == "" {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		initialContent := registry.GetOrCreate(path).Read()
		return adaptor.HTTPHandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ws.ServeWs(hub, writer, request, path, initialContent, setupLogger)
		})(c)
	})

	api2.InitAPI(app, dataStore, snapshotStore, registry, manager, hub,
		*retrievedSettings, validatorEvaluator, setupLogger)

	fiberString := fmt.Sprintf("%s:%s", retrievedSettings.IP, retrievedSettings.Port)
	setupLogger.Info("Listening on " + fiberString)
	if err := app.Listen(fiberString); err != nil {
		setupLogger.Fatal("Server stopped: " + err.Error())
	}
}
