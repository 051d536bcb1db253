// cmd/ppgsim/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tamzrod/ppg-monitor/internal/config"
	"github.com/tamzrod/ppg-monitor/internal/sim"
	"github.com/tamzrod/ppg-monitor/internal/stream"
)

func main() {
	var (
		natsURL   = flag.String("nats", config.DefaultNATSURL, "NATS url")
		subject   = flag.String("subject", "ppg.wrist.notify", "notification subject")
		cmdSubj   = flag.String("cmd", "hr.wrist.command", "command subject")
		fs        = flag.Int("fs", 50, "sampling rate Hz")
		hr        = flag.Float64("hr", 72, "heart rate bpm")
		batch     = flag.Int("batch", 5, "samples per notification")
		motion    = flag.Float64("motion", 0, "accelerometer shake amplitude (g)")
		battery   = flag.Int("battery", 95, "reported battery level")
		battEvery = flag.Duration("battery-every", 10*time.Second, "battery frame period (0 = never)")
		waitStart = flag.Bool("wait-enable", false, "stay silent until 'set ppg_enable 1'")
	)
	flag.Parse()

	nc, err := stream.Connect(config.NATSConfig{URL: *natsURL, Name: "ppgsim"})
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Drain()

	// ppg_enable emulation
	var enabled atomic.Bool
	enabled.Store(!*waitStart)

	_, err = nc.Subscribe(*cmdSubj, func(msg *nats.Msg) {
		line := strings.TrimSpace(string(msg.Data))
		log.Printf("command: %q", line)
		switch line {
		case "set ppg_enable 1":
			enabled.Store(true)
		case "set ppg_enable 0":
			enabled.Store(false)
		}
	})
	if err != nil {
		log.Fatal(err)
	}

	g := sim.NewPPGSim(float64(*fs), *hr)
	g.SetMotion(*motion)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	period := time.Second * time.Duration(*batch) / time.Duration(*fs)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var battC <-chan time.Time
	if *battEvery > 0 {
		bt := time.NewTicker(*battEvery)
		defer bt.Stop()
		battC = bt.C
	}

	var count uint16

	for {
		select {
		case <-ctx.Done():
			log.Println("ppgsim: stopping")
			return

		case <-ticker.C:
			if !enabled.Load() {
				continue
			}
			if err := nc.Publish(*subject, g.Notification(*batch)); err != nil {
				log.Printf("publish failed: %v", err)
			}
			count += uint16(*batch)

		case <-battC:
			if !enabled.Load() {
				continue
			}
			if err := nc.Publish(*subject, sim.BatteryFrame(uint8(*battery), count)); err != nil {
				log.Printf("battery publish failed: %v", err)
			}
		}
	}
}
