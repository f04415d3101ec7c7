package socket_connection

import (
	"encoding/json"
	"go-swarm/handlers"
	"log"
	"net"
	"sync"
)

var (
	// clients holds active client connections.
	clients      = make(map[net.Conn]struct{})
	clientsMutex sync.Mutex
)

// broadcastEvents listens on the coordinator event channel and sends
// every event to all connected clients as one JSON line.
func broadcastEvents() {
	for event := range handlers.EventChan {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("Error marshaling event: %v", err)
			continue
		}
		// Append a newline so clients can separate events.
		data = append(data, '\n')

		clientsMutex.Lock()
		for conn := range clients {
			if _, err := conn.Write(data); err != nil {
				log.Printf("Error writing event to client %v: %v", conn.RemoteAddr(), err)
				if cerr := conn.Close(); cerr != nil {
					log.Printf("Error closing client connection: %v", cerr)
				}
				delete(clients, conn)
			}
		}
		clientsMutex.Unlock()
	}
}

// StartSocketServer listens on addr and streams coordinator events to
// every accepted client. Observability only; a slow or absent client
// never blocks the coordinator.
func StartSocketServer(addr string) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("Error starting socket server: %v", err)
		return
	}
	log.Printf("Socket server started on %s", ln.Addr())

	go broadcastEvents()

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		// Add the new client connection to the map
		clientsMutex.Lock()
		clients[conn] = struct{}{}
		clientsMutex.Unlock()
		log.Printf("New client connected: %v", conn.RemoteAddr())

		go handleConnection(conn)
	}
}

// handleConnection monitors a client connection for disconnection by
// reading from it.
func handleConnection(conn net.Conn) {
	buf := make([]byte, 1)
	for {
		if _, err := conn.Read(buf); err != nil {
			break
		}
	}
	// Remove the client when the connection is closed.
	clientsMutex.Lock()
	delete(clients, conn)
	clientsMutex.Unlock()
	log.Printf("Client disconnected: %v", conn.RemoteAddr())
	if err := conn.Close(); err != nil {
		return
	}
}
