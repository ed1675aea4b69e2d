package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-csg-pathtracer/pkg/renderer"
	"github.com/df07/go-csg-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	logger := renderer.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	webServer := server.NewServer(*port, logger)

	logger.Printf("CSG Path Tracer Web Server")
	logger.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		logger.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
