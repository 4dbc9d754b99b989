package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/km6i/prefill/internal/emit"
	"github.com/km6i/prefill/internal/model"
	"github.com/km6i/prefill/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logDirs     []string
	seedFile    string
	outFormat   string
	outPath     string
	dialectName string
	concurrency int
	noCache     bool
	cacheDir    string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a prefill file from a directory of Cabrillo logs",
	Long: `Generate consolidates contest logs into one prefill file:
- Parse every file in the log directories as a Cabrillo log
- Optionally seed from a previous prefill file (fresh log data outranks it)
- Keep only each callsign's most recent year
- Settle per-field disagreements by plurality vote

Example:
  prefill generate -d ./logs-2012
  prefill generate -d ./logs-2011 -d ./logs-2012 -p last-year.txt -o ss.txt
  prefill generate -d ./logs --format wintest --no-cache`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringSliceVarP(&logDirs, "dir", "d", nil, "directory of Cabrillo logs (repeatable)")
	generateCmd.Flags().StringVarP(&seedFile, "seed", "p", "", "pre-existing prefill file to seed from (N1MM format)")
	generateCmd.Flags().StringVar(&outFormat, "format", "", "output format: "+strings.Join(emit.Formats(), ", "))
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	generateCmd.Flags().StringVar(&dialectName, "dialect", "", "force a QSO dialect instead of reading CONTEST: headers")
	generateCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-log cache")
	generateCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "parsed-log cache directory")

	_ = viper.BindPFlag("output.format", generateCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("cache.dir", generateCmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("logs.dialect", generateCmd.Flags().Lookup("dialect"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(logDirs) == 0 && seedFile == "" {
		return fmt.Errorf("nothing to do: pass at least one --dir or a --seed file")
	}

	// Build configuration: defaults, then config file/env, then flags.
	cfg := model.DefaultConfig()
	if v := viper.GetStringSlice("logs.dirs"); len(v) > 0 {
		cfg.Logs.Dirs = v
	}
	if v := viper.GetString("output.format"); v != "" {
		cfg.Output.Format = v
	}
	if v := viper.GetString("logs.dialect"); v != "" {
		cfg.Logs.Dialect = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if len(logDirs) > 0 {
		cfg.Logs.Dirs = logDirs
	}
	cfg.Logs.Seed = seedFile
	cfg.Output.Path = outPath
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.Workers = concurrency

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Log dirs:  %s\n", strings.Join(cfg.Logs.Dirs, ", "))
		if cfg.Logs.Seed != "" {
			fmt.Fprintf(os.Stderr, "Seed file: %s\n", cfg.Logs.Seed)
		}
		fmt.Fprintf(os.Stderr, "Format:    %s\n", cfg.Output.Format)
		fmt.Fprintf(os.Stderr, "Workers:   %d\n", cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Cache:     %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	result, err := p.Run(context.Background())
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if cfg.Logs.Seed != "" {
		fmt.Fprintf(os.Stderr, "✓ Seeded %d callsigns (%d lines, %d skipped)\n",
			result.SeedStats.Valid, result.SeedStats.Lines, len(result.SeedStats.Skipped))
		for _, line := range result.SeedStats.Skipped {
			fmt.Fprintf(os.Stderr, "  Ignoring seed line %q\n", line)
		}
	}
	fmt.Fprintf(os.Stderr, "✓ Parsed %d logs (%d lines, %d QSOs, %d from cache)\n",
		result.Files, result.Lines, result.QSOs, result.CachedFiles)
	fmt.Fprintf(os.Stderr, "✓ Resolved %d callsigns\n", len(result.Entries))

	if verbose {
		for _, amb := range result.Ambiguities {
			fmt.Fprintf(os.Stderr, "Ambiguous %s for %s: choosing %q from %v\n",
				amb.Field, amb.Callsign, amb.Chosen, amb.Counts)
		}
	} else if len(result.Ambiguities) > 0 {
		fmt.Fprintf(os.Stderr, "  %d ambiguous fields settled by plurality (rerun with -v for details)\n",
			len(result.Ambiguities))
	}

	if err := p.WriteOutput(result); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if cfg.Output.Path != "" {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s prefill: %s\n", cfg.Output.Format, cfg.Output.Path)
	}

	return nil
}
