package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-gigradar-automation/internal/alerts"
	"go-gigradar-automation/internal/browser"
	"go-gigradar-automation/internal/classifier"
	"go-gigradar-automation/internal/config"
	"go-gigradar-automation/internal/database"
	"go-gigradar-automation/internal/scanner"
	"go-gigradar-automation/internal/scheduler"
	"go-gigradar-automation/internal/scraper/xsearch"

	"github.com/gin-gonic/gin"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. %d queries, scan every %s", len(cfg.SearchQueries), cfg.ScanInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//connect database
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()
	log.Println("🗄️ Database connected.")

	//init telegram notifier
	notifier, err := alerts.NewNotifier(cfg.TelegramToken, cfg.TelegramOpsChat)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
	}
	log.Println("🤖 Telegram Bot initialized.")

	//init playwright manager
	pwManager, err := browser.NewPlaywright(true)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()
	log.Println("✅ Browser initialized successfully!")

	scan := scanner.New(
		xsearch.NewXScraper(pwManager, cfg.AuthPath),
		classifier.New(classifier.DefaultVocabulary()),
		repo,
		notifier,
		scanner.Config{
			Queries:         cfg.SearchQueries,
			PerQueryLimit:   cfg.PerQueryLimit,
			AcceptThreshold: cfg.AcceptThreshold,
			AlertThreshold:  cfg.AlertThreshold,
		},
	)

	sched := scheduler.New(cfg.ScanInterval, cfg.WarmupDelay, func(ctx context.Context) {
		if _, err := scan.Scan(ctx); errors.Is(err, scanner.ErrScanActive) {
			log.Println("⏭️ Tick dropped: previous scan still running")
		}
	})
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"scanner":     scan.Status(),
			"last_report": scan.LastReport(),
		})
	})
	r.GET("/gigs/:id", func(c *gin.Context) {
		gig, err := repo.FindGigByExternalID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if gig == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "gig not found"})
			return
		}
		c.JSON(http.StatusOK, gig)
	})
	r.POST("/scan", func(c *gin.Context) {
		//detached context: a dropped client must not cancel a mid-flight run
		report, err := scan.Scan(context.WithoutCancel(ctx))
		if errors.Is(err, scanner.ErrScanActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "scan already in progress"})
			return
		}
		c.JSON(http.StatusOK, report)
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("⚠️ Server shutdown error: %v", err)
	}
}
