// Command sample runs a small notes API backed by SQLite.
//
// Run:
//
//	go run ./cmd/sample
//
// Then explore:
//
//	GET    http://localhost:8080/v1/notes/                — list notes
//	GET    http://localhost:8080/v1/notes/?format=yaml    — same page as YAML
//	GET    http://localhost:8080/v1/notes/?offset=1&limit=2
//	GET    http://localhost:8080/v1/notes/{id}/           — one note
//	POST   http://localhost:8080/v1/notes/                — create
//	PUT    http://localhost:8080/v1/notes/{id}/           — replace or create
//	DELETE http://localhost:8080/v1/notes/{id}/           — delete
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/bjaus/rest"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "notes.db", "SQLite database path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := run(*addr, *dbPath); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func run(addr, dbPath string) error {
	db, err := rest.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	defer db.Close()

	// Retired notes stay in the table but drop out of the API.
	store, err := rest.NewSQLiteCollection(db, "notes", newNote,
		rest.WithSQLFilter("json_extract(doc, '$.is_active') = 1"),
	)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	if err := seed(store); err != nil {
		return fmt.Errorf("seeding collection: %w", err)
	}

	notes, err := rest.NewResource(
		rest.WithName("notes"),
		rest.WithAPIName("v1"),
		rest.WithRepresentation(newNote),
		rest.WithCollection(store),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	notes.Register(mux)

	handler := rest.Chain(mux,
		rest.Recovery(),
		rest.RequestID(),
		rest.Logger(slog.Default()),
		rest.RateLimit(rest.RateLimitConfig{Rate: 50, Burst: 100}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("starting server", "addr", addr, "db", dbPath)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// seed loads a couple of starter notes into an empty collection.
func seed(store *rest.SQLiteCollection) error {
	n, err := store.Count()
	if err != nil || n > 0 {
		return err
	}

	for _, d := range []rest.Dict{
		{"title": "First note", "slug": "first-note", "content": "Hello from the sample API.", "is_active": true},
		{"title": "Second note", "slug": "second-note", "content": "Try ?format=xml on the list endpoint.", "is_active": true},
	} {
		rep := newNote()
		if err := rep.PopulateFromDict(d); err != nil {
			return err
		}
		if _, _, err := store.Save("", rep); err != nil {
			return err
		}
	}
	return nil
}
