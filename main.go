package main

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/repo"
	"taskboard/internal/store"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadOrCreate(config.DefaultConfigFileName)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer s.Close()

	tasks := repo.New(s, logger)

	tmpl, err := parseTemplates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	h := handlers.New(tasks, tmpl, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// View pages; every page re-derives from the repository, so a mutation
	// made in one view shows up in all of them on the next request.
	r.Get("/", h.ListPage)
	r.Get("/calendar", h.CalendarPage)
	r.Get("/daily", h.DailyPage)
	r.Get("/kanban", h.KanbanPage)

	// Task API routes
	r.Get("/api/tasks", h.ListTasks)
	r.Post("/api/tasks", h.CreateTask)
	r.Get("/api/tasks/{id}", h.GetTask)
	r.Put("/api/tasks/{id}", h.UpdateTask)
	r.Delete("/api/tasks/{id}", h.DeleteTask)
	r.Post("/api/tasks/{id}/status", h.MoveTask)
	r.Post("/api/tasks/{id}/toggle", h.ToggleTaskDone)
	r.Post("/api/tasks/{id}/subtasks/{index}/toggle", h.ToggleSubtask)
	r.Get("/api/tasks/{id}/calendar.ics", h.ExportTaskICS)
	r.Post("/api/quick-add", h.QuickAdd)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func parseTemplates() (*template.Template, error) {
	tmpl := template.New("")

	patterns := []string{
		"templates/*.html",
		"templates/partials/*.html",
	}

	for _, pattern := range patterns {
		matches, err := fs.Glob(templatesFS, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			content, err := templatesFS.ReadFile(match)
			if err != nil {
				return nil, err
			}
			if _, err := tmpl.New(filepath.Base(match)).Parse(string(content)); err != nil {
				return nil, err
			}
		}
	}

	return tmpl, nil
}
