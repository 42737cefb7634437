package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"library-lending/internal/config"
	"library-lending/internal/firebase"
	"library-lending/internal/handlers"
	"library-lending/internal/ledger"
	"library-lending/internal/lending"
	"library-lending/internal/memory"
	"library-lending/internal/messages"
	"library-lending/internal/middleware"
	"library-lending/internal/reviews"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()

	var (
		lendingLedger ledger.Ledger
		reviewStore   reviews.Store
		messageStore  messages.Store
		authenticate  func(http.Handler) http.Handler
	)

	if cfg.UseMemoryStore {
		// Local development without Firebase credentials: in-memory state
		// and an identity taken unverified from the X-User-* headers.
		log.Println("warning: using in-memory store and stub authentication")
		store := memory.NewStore()
		lendingLedger, reviewStore, messageStore = store, store, store
		authenticate = middleware.StubAuth()
	} else {
		client, err := firebase.NewClient(ctx)
		if err != nil {
			log.Fatal("firebase:", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Println("firestore close:", err)
			}
		}()

		lendingLedger, reviewStore, messageStore = client, client, client
		authenticate = middleware.Auth(client.Auth, cfg.RolesClaim)
	}

	lendingService := lending.NewService(lendingLedger,
		lending.WithMaxLoans(cfg.MaxLoans),
		lending.WithLoanPeriod(time.Duration(cfg.LoanPeriodDays)*24*time.Hour),
	)

	router := handlers.NewRouter(handlers.Deps{
		Books:        handlers.NewBooksHandler(lendingService),
		Admin:        handlers.NewAdminHandler(lendingService),
		Reviews:      handlers.NewReviewsHandler(reviews.NewService(reviewStore)),
		Messages:     handlers.NewMessagesHandler(messages.NewService(messageStore)),
		Authenticate: authenticate,
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
