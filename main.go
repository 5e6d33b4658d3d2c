// @title           IFC Dashboard API
// @version         1.0
// @description     Analysis of IFC building models and companion Excel workbooks: component counts, object data extraction, model comparison and PDF, CSV or XLSX export.

// @contact.name   API Support

// @BasePath  /

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ifcdash/docs"
	"ifcdash/handlers"
	"ifcdash/storage"
	"ifcdash/utils"
)

func CORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept", "Origin",
		"X-Requested-With", "Authorization", "User-Agent", "Cache-Control",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS", "HEAD"}
	// Report and export routes describe skipped parts in these headers.
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
		"X-Report-Warnings", "X-Report-Messages",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var sweepRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

// scheduleSweep removes scratch uploads left behind by requests that never
// reached their cleanup, e.g. after a crash.
func scheduleSweep(c *cron.Cron, schedule string, store *storage.ScratchStore) error {
	_, err := c.AddFunc(schedule, func() {
		if !atomic.CompareAndSwapInt32(&sweepRunning, 0, 1) {
			log.Println("Previous scratch sweep still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&sweepRunning, 0)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		var wg sync.WaitGroup
		safeGo(ctx, &wg, "ScratchSweep", func(ctx context.Context) error {
			_, err := store.Sweep(time.Now())
			return err
		})

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			log.Println("Scratch sweep timeout reached")
		}
	})
	return err
}

func main() {
	cfg, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.NewScratchStore(cfg.ScratchDir, cfg.ScratchTTL)
	if err != nil {
		log.Fatalf("Failed to initialize scratch storage: %v", err)
	}
	log.Printf("Scratch storage at %s (ttl %s)", store.Dir(), cfg.ScratchTTL)

	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	if err := scheduleSweep(c, cfg.SweepSchedule, store); err != nil {
		log.Fatalf("Failed to schedule scratch sweep: %v", err)
	}
	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig(cfg.CORSOrigins)))

	handlers.RegisterRoutes(r.Group("/api"), handlers.Uploads{Store: store, MaxSize: cfg.MaxUploadSize})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	portInt, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", cfg.Port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Listening on :%s", cfg.Port)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduling first; a sweep already in flight may finish.
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
