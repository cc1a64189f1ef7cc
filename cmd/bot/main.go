package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/line-shop-bot/config"
	lineDelivery "github.com/yourusername/line-shop-bot/internal/delivery/line"
	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/domain/repository"
	"github.com/yourusername/line-shop-bot/internal/infrastructure/cache"
	"github.com/yourusername/line-shop-bot/internal/infrastructure/parser"
	"github.com/yourusername/line-shop-bot/internal/infrastructure/sheets"
	"github.com/yourusername/line-shop-bot/internal/infrastructure/storage"
	"github.com/yourusername/line-shop-bot/internal/matcher"
	"github.com/yourusername/line-shop-bot/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Local order mirror.
	orderStore, err := storage.NewSQLiteOrderStore(cfg.OrderDBPath)
	if err != nil {
		log.Fatalf("Failed to open order store: %v", err)
	}
	defer orderStore.Close()

	// Catalog source and order ledger. Sheets is the normal backend;
	// a local workbook covers offline and development use.
	var source repository.CatalogSource
	var ledger repository.OrderLedger
	var sourceName string
	if cfg.UseSheets() {
		client, err := sheets.NewClient(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.CatalogSheet, cfg.OrderSheet)
		if err != nil {
			log.Fatalf("Failed to create sheets client: %v", err)
		}
		source = client
		ledger = client
		sourceName = fmt.Sprintf("sheets:%s!%s", cfg.SpreadsheetID, cfg.CatalogSheet)
		log.Printf("Catalog source: Google Sheets %s!%s", cfg.SpreadsheetID, cfg.CatalogSheet)
	} else {
		source = parser.NewFileCatalog(cfg.CatalogXLSX)
		ledger = storage.NewLocalLedger(orderStore)
		sourceName = "file:" + cfg.CatalogXLSX
		log.Printf("Catalog source: workbook %s", cfg.CatalogXLSX)
	}

	catalogCache := storage.NewCatalogCache(source, cfg.CatalogTTL)
	log.Printf("Catalog cache TTL: %s", cfg.CatalogTTL)

	resolver := matcher.NewResolver(cfg.MatchThreshold)
	recent := cache.NewRecentMatches(cache.DefaultPerUser)
	log.Printf("Match threshold: %.2f", cfg.MatchThreshold)

	catalogUseCase := usecase.NewCatalogUseCase(catalogCache, sourceName)
	queryUseCase := usecase.NewQueryUseCase(resolver, recent)
	orderUseCase := usecase.NewOrderUseCase(ledger, orderStore)

	handler, err := lineDelivery.NewBotHandler(
		cfg.LineChannelSecret,
		cfg.LineChannelToken,
		catalogUseCase,
		queryUseCase,
		orderUseCase,
	)
	if err != nil {
		log.Fatalf("Failed to create bot handler: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", handler.Callback)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	// Operator view of the catalog snapshot; POST forces a refresh.
	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		var (
			snap entity.ProductCatalog
			err  error
		)
		if r.Method == http.MethodPost {
			snap, err = catalogUseCase.Refresh(r.Context())
		} else {
			snap, err = catalogUseCase.Snapshot(r.Context())
		}
		if err != nil {
			log.Printf("catalog snapshot failed: %v", err)
			http.Error(w, "failed to load catalog", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "%s  %d products  fetched %s\n",
			snap.Source, len(snap.Products), snap.UpdatedAt.Format(time.RFC3339))
	})
	// Operator view of the local order mirror.
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderUseCase.Recent(r.Context(), 50)
		if err != nil {
			log.Printf("recent orders failed: %v", err)
			http.Error(w, "failed to list orders", http.StatusInternalServerError)
			return
		}
		for _, o := range orders {
			fmt.Fprintf(w, "%s  %s  %s x %d  %.2f  %s  %s\n",
				o.CreatedAt.Format(time.RFC3339), o.ID, o.ProductName, o.Qty, o.Total(), o.Status, o.DisplayName)
		}
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
