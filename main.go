package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-swarm/handlers"
	"go-swarm/hardware"
	socket_connection "go-swarm/server/socket-connection"
	udp_connection "go-swarm/server/udp-connection"
	"go-swarm/util"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the coordinator configuration file")
	flag.Parse()

	// Load the coordinator configuration from file.
	cfg, err := util.LoadYamlFile[Config](*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.applyDefaults()

	if dump, err := util.JsonDumps(cfg, true); err == nil {
		log.Printf("Configuration:\n%s", dump)
	}

	// Bind the swarm socket.
	link, err := udp_connection.Listen(cfg.Port)
	if err != nil {
		log.Fatalf("Failed to open swarm socket: %v", err)
	}

	// Acquire the physical lines. Without them the coordinator cannot
	// run, so failure here aborts startup.
	bank, err := hardware.Open(cfg.Hardware)
	if err != nil {
		log.Fatalf("Failed to acquire hardware lines: %v", err)
	}

	state := handlers.NewSwarmState(time.Now())
	rlog := handlers.NewReadingsLog(cfg.LogFile)
	dispatcher := handlers.NewDispatcher(bank, state, link, rlog)
	receiver := handlers.NewReceiver(link, state, rlog, dispatcher)

	log.Printf("Swarm UDP listener on port %d", cfg.Port)
	log.Printf("Protocol: master packets: %sMaster,<id>,<reading>%s", handlers.StartMarker, handlers.EndMarker)

	// The dispatcher owns all line handles; everything else asks it.
	go dispatcher.Run(context.Background())

	// Stream coordinator events to any connected observers.
	go socket_connection.StartSocketServer(cfg.SocketAddr)

	// The receive loop runs on the main goroutine for the life of the
	// process.
	receiver.Run(context.Background())
}
