package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/config"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/controller"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/db"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/platforms/yahoo"
	"github.com/NavdeepHayer/yahoo-fantasy-tool-BE/web"
	"github.com/itbasis/go-clock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.PostgresConnStr, cfg.EncryptionKey, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	yahooConfig := cfg.OAuthConfig()
	yahooClient, err := yahoo.New(cfg.YahooAPIURL, yahooConfig, db, clock)
	if err != nil {
		log.Fatalf("error creating yahoo client: %v", err)
	}

	ctrl, err := controller.New(clock, yahooConfig, yahooClient, db)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(cfg.Port, cfg.CORSOrigins, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
