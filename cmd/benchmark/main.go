package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"docsearch/config"
	"docsearch/internal/adapter/analyzer"
	"docsearch/internal/adapter/cache"
	"docsearch/internal/adapter/retriever"
	"docsearch/internal/adapter/store"
	"docsearch/internal/usecase"
	"github.com/sirupsen/logrus"
)

func main() {
	indexPath := flag.String("index", ".", "Path to indexed directory")
	query := flag.String("q", "", "Query to test")
	runs := flag.Int("n", 50, "Number of timed runs")
	topK := flag.Int("k", 10, "Number of results to print")
	flag.Parse()

	if *query == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -index ./docs.gl -q \"query\"")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Index load time")
		fmt.Println("  2. Uncached TF-IDF scoring latency")
		fmt.Println("  3. Cached lookup latency")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	start := time.Now()
	st, err := store.OpenReadOnly(config.IndexDBPath(*indexPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		os.Exit(1)
	}
	model, err := usecase.LoadModel(st)
	st.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading index: %v\n", err)
		os.Exit(1)
	}
	loadTime := time.Since(start)

	fmt.Println("TF-IDF SEARCH BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Documents: %d\n", len(model.Docs))
	fmt.Printf("Terms:     %d\n", len(model.DocFreq))
	fmt.Printf("Load time: %s\n", loadTime)
	fmt.Println()

	tfidf := retriever.NewTFIDFRetriever(analyzer.NewTokenizer(cfg.Index.NormalizeCase), nil)
	uncached := usecase.NewSearchUseCase(tfidf, nil, cfg.Search.MaxResults, logger)
	uncached.Load(model)
	cached := usecase.NewSearchUseCase(tfidf, cache.NewQueryCache(16, time.Hour), cfg.Search.MaxResults, logger)
	cached.Load(model)

	fmt.Printf("Query: \"%s\"\n", *query)
	fmt.Println(strings.Repeat("-", 70))

	ctx := context.Background()
	uncachedTimes := measure(ctx, uncached, *query, *runs)
	cachedTimes := measure(ctx, cached, *query, *runs)

	report("Uncached", uncachedTimes)
	report("Cached", cachedTimes)

	ranking, err := uncached.Search(ctx, *query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTop %d of %d matching documents:\n", min(*topK, len(ranking)), len(ranking))
	for i, rank := range ranking.Top(*topK) {
		fmt.Printf("  %2d. %s (%.4f)\n", i+1, rank.Path, rank.Score)
	}
}

func measure(ctx context.Context, uc *usecase.SearchUseCase, query string, runs int) []time.Duration {
	times := make([]time.Duration, 0, runs)
	for i := 0; i < runs; i++ {
		start := time.Now()
		if _, err := uc.Search(ctx, query); err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		times = append(times, time.Since(start))
	}
	return times
}

func report(label string, times []time.Duration) {
	if len(times) == 0 {
		return
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	var total time.Duration
	for _, t := range times {
		total += t
	}
	p95 := times[min(len(times)*95/100, len(times)-1)]
	fmt.Printf("%-9s mean %-12s p50 %-12s p95 %-12s max %s\n",
		label+":", total/time.Duration(len(times)), times[len(times)/2], p95, times[len(times)-1])
}
