package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/abiiranathan/docsearch/chat"
	"github.com/abiiranathan/docsearch/cli"
	"github.com/abiiranathan/docsearch/routes"
	"github.com/abiiranathan/docsearch/search"
)

func Run(config *cli.Config) {
	// Load the document snapshot built by the analyze command.
	docs, err := search.Deserialize(config.Index)
	if err != nil {
		panic(fmt.Errorf("unable to deserialize index: %s: %v", config.Index, err))
	}

	engine := search.NewEngine()
	engine.SetDocuments(docs)
	assistant := chat.NewAssistant(engine)

	// Create a new serveMux
	mux := http.NewServeMux()

	// Create a new http server to customize the timeouts.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           routes.Logger(os.Stdout)(mux),
		ReadTimeout:       time.Second * 10,
		WriteTimeout:      time.Second * 10,
		ReadHeaderTimeout: time.Second * 5,
	}

	// Connect the routes.
	routes.SetupRoutes(mux, engine, assistant)

	defer GracefulShutdown(server)

	log.Printf("Serving %d documents on http://0.0.0.0:%d\n", len(docs), config.Port)

	// Start the server
	err = server.ListenAndServe()
	if err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server terminated with error: %v\n", err)
		}
	}
}

// Gracefully shuts down the server. The default timeout is 10 seconds
// To wait for pending connections.
func GracefulShutdown(server *http.Server, timeout ...time.Duration) {
	var t time.Duration
	if len(timeout) > 0 {
		t = timeout[0]
	} else {
		t = 10 * time.Second
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	log.Println("waiting on os.Interrupt")

	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), t)
	defer cancel()

	log.Println("Shutting down the server")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalln(err)
	}
	log.Println("shutting down gracefully")
}
