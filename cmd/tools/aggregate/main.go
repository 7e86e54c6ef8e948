package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/aggregate"
	"github.com/elimuhub/opportunity-finder/internal/models"
	"github.com/elimuhub/opportunity-finder/internal/sources"
)

func main() {
	var (
		county  = flag.String("county", "", "restrict to one county")
		oppType = flag.String("type", "", "restrict to one opportunity type")
		limit   = flag.Int("limit", 0, "cap the number of records shown")
		kenyan  = flag.Bool("kenyan-only", false, "drop records not open to Kenyan applicants")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	if !*verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	defer logger.Sync()

	registry, err := sources.LoadRegistry("")
	if err != nil {
		logger.Fatal("failed to load source registry", zap.Error(err))
	}
	adapters := sources.BuildAdapters(registry, logger)
	orch := aggregate.NewOrchestrator(adapters, aggregate.NewCache(aggregate.DefaultTTL), logger)

	result := orch.Run(context.Background(), sources.FetchOptions{
		County:     *county,
		Type:       models.Type(*oppType),
		Limit:      *limit,
		KenyanOnly: *kenyan,
	})

	merged := result.Merged
	if *kenyan {
		merged = aggregate.Apply(merged, aggregate.KenyanOnly())
	}
	if *limit > 0 && len(merged) > *limit {
		merged = merged[:*limit]
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Type", "Provider", "Deadline", "Amount", "Source"})
	for _, opp := range merged {
		t.AppendRow(table.Row{
			truncate(opp.Name, 48), opp.Type, truncate(opp.Provider, 30),
			opp.ApplicationDeadline, truncate(opp.Amount, 18), opp.Source,
		})
	}
	t.Render()

	fmt.Printf("\nrun %s: %d records from %d sources, %d duplicates folded, %dms\n",
		result.Stats.RunID, result.Stats.Total, len(result.Stats.PerSource),
		result.Stats.Duplicates, result.Stats.DurationMS)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
