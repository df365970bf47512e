package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenes := flag.String("scenes", "../scenes", "Directory of JSON scene files")
	flag.Parse()

	webServer := server.NewServer(*port, *scenes)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
