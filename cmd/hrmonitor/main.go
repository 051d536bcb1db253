// cmd/hrmonitor/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	"github.com/tamzrod/ppg-monitor/internal/config"
	"github.com/tamzrod/ppg-monitor/internal/display"
	"github.com/tamzrod/ppg-monitor/internal/session"
	"github.com/tamzrod/ppg-monitor/internal/stream"
	"github.com/tamzrod/ppg-monitor/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: hrmonitor <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate + normalize config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Shared transport + outputs
	// --------------------

	nc, err := stream.Connect(cfg.Monitor.NATS)
	if err != nil {
		log.Fatalf("nats connect failed (url=%s): %v", cfg.Monitor.NATS.URL, err)
	}
	defer nc.Drain()

	var hub *display.Hub
	var server *http.Server
	if cfg.Monitor.Display.Addr != "" {
		hub = display.NewHub()
		server = display.NewServer(cfg.Monitor.Display.Addr, hub)
		go func() {
			log.Printf("display listening on %s", cfg.Monitor.Display.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("display server stopped: %v", err)
			}
		}()
	}

	clients, closeWriters, err := writer.BuildEndpointClients(cfg.Monitor.Devices)
	if err != nil {
		log.Fatalf("status clients failed: %v", err)
	}
	defer closeWriters()

	// --------------------
	// Build per-device pipelines
	// --------------------

	type running struct {
		dev  config.DeviceConfig
		sess *session.Session
		sub  *nats.Subscription
	}
	var devices []running

	for _, dev := range cfg.Monitor.Devices {

		// ---- session ----
		sess, err := session.Build(dev)
		if err != nil {
			log.Fatalf("session build failed (device=%s): %v", dev.ID, err)
		}

		// ---- writer plan ----
		plan, err := writer.BuildPlan(dev)
		if err != nil {
			log.Fatalf("writer plan failed (device=%s): %v", dev.ID, err)
		}
		statusWriter := writer.New(plan, clients)

		// ---- inbound notifications ----
		sub, err := stream.SubscribeNotifications(nc, dev.Source.NotifySubject, func(p []byte) {
			sess.Ingest(p)
		})
		if err != nil {
			log.Fatalf("subscribe failed (device=%s): %v", dev.ID, err)
		}

		// ---- start the device ----
		if err := stream.SendCommands(nc, dev.Source.CommandSubject, dev.Source.StartCommands); err != nil {
			log.Printf("start commands failed (device=%s): %v", dev.ID, err)
		}

		log.Printf("session started (device=%s session=%s)", dev.ID, sess.ID())

		// ---- channel between session and outputs ----
		out := make(chan session.Cycle)

		// Orchestrator (owns last-state memory for transition logs)
		go func(dev config.DeviceConfig) {
			last := analysis.StateNotWorn

			for {
				select {
				case <-ctx.Done():
					return

				case c := <-out:
					if c.State != last {
						log.Printf("state change (device=%s): %s -> %s", dev.ID, last, c.State)
						last = c.State
					}

					// --- result publication ---
					if err := stream.PublishCycle(nc, dev.Source.ResultSubject, c); err != nil {
						log.Printf("publish failed (device=%s): %v", dev.ID, err)
					}

					// --- live display ---
					if hub != nil {
						if err := hub.BroadcastCycle(c); err != nil {
							log.Printf("display broadcast failed (device=%s): %v", dev.ID, err)
						}
					}

					// --- status block ---
					if err := statusWriter.Write(c); err != nil {
						log.Printf("status write failed (device=%s): %v", dev.ID, err)
					}
				}
			}
		}(dev)

		// session producer
		go sess.Run(ctx, out)

		devices = append(devices, running{dev: dev, sess: sess, sub: sub})
	}

	// --------------------
	// Block until signal, then stop devices
	// --------------------
	<-ctx.Done()
	log.Printf("shutting down")

	for _, r := range devices {
		_ = r.sub.Unsubscribe()
		if err := stream.SendCommands(nc, r.dev.Source.CommandSubject, r.dev.Source.StopCommands); err != nil {
			log.Printf("stop commands failed (device=%s): %v", r.dev.ID, err)
		}
		r.sess.Stop()
		log.Printf("session stopped (device=%s session=%s)", r.dev.ID, r.sess.ID())
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}
