package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rohanthewiz/logger"

	"invdash/models"
	"invdash/tui"
	"invdash/web"
)

const usage = `usage: invdash [web|tui]

  web   serve the dashboard in the browser (default)
  tui   run the dashboard in the terminal

Settings come from INVDASH_* environment variables or a .env file.`

func main() {
	mode := "web"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	cfg, err := models.LoadConfig(".env")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	logger.SetLogLevel(cfg.LogLevel)

	api := models.NewAPIClient(cfg)

	switch mode {
	case "web":
		srv := web.NewServer(cfg, api)
		log.Fatal(web.Run(srv, cfg))
	case "tui":
		if err := tui.Run(cfg, api); err != nil {
			log.Fatal(err)
		}
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
