package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/walatech/tenant-core/internal/domain"
)

// eventstream tails tenant lifecycle events from a running API.
func main() {
	url := flag.String("url", "ws://localhost:10000/api/v1/admin/tenants/events/stream", "Event stream URL")
	token := flag.String("token", "", "Super admin JWT")
	host := flag.String("host", "", "Host header to send, e.g. walatech.localhost")
	flag.Parse()

	if *token == "" {
		log.Fatal("Usage: eventstream -token <JWT_TOKEN> [-url URL] [-host HOST]")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+*token)
	if *host != "" {
		header.Set("Host", *host)
	}

	fmt.Printf("Connecting to %s...\n", *url)
	conn, _, err := websocket.DefaultDialer.Dial(*url, header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for tenant events...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var event domain.TenantEvent
			if err := conn.ReadJSON(&event); err != nil {
				log.Println("Read error:", err)
				return
			}
			fmt.Printf("%s  %-22s %s (%s) -> %s\n",
				event.OccurredAt.Format(time.RFC3339), event.Type, event.Subdomain, event.TenantID, event.Status)
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")

		// Send close message
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}

		// Wait for the connection to close
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
