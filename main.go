package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/socialconnect/lib/mypublisher"
	"github.com/MarcGrol/socialconnect/lib/mypubsub"
	"github.com/MarcGrol/socialconnect/lib/myqueue"
	"github.com/MarcGrol/socialconnect/lib/mysession"
	"github.com/MarcGrol/socialconnect/lib/mytime"
	"github.com/MarcGrol/socialconnect/lib/myuuid"
	"github.com/MarcGrol/socialconnect/services/connect"
	"github.com/MarcGrol/socialconnect/services/connect/connectfactory"
	"github.com/MarcGrol/socialconnect/services/connect/connections"
	"github.com/MarcGrol/socialconnect/services/connect/providers"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	sessionStore, sessionStoreCleanup, err := mysession.New(c)
	if err != nil {
		log.Fatalf("Error creating session-store: %s", err)
	}
	defer sessionStoreCleanup()

	connectionRepo, connectionRepoCleanup, err := connections.NewRepository(c)
	if err != nil {
		log.Fatalf("Error creating connection-repository: %s", err)
	}
	defer connectionRepoCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task-queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	registry := connectfactory.NewFactoryRegistry()
	providers.RegisterAll(registry)

	interceptors := connect.NewInterceptorRegistry()

	connectService := connect.NewService(registry, connectionRepo, sessionStore, interceptors, nower, uuider, publisher)
	err = connectService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering connect-service: %s", err)
	}

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
