package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/agent"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	database "github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/db"
)

var (
	// Global flags
	verbose bool
	model   string
	timeout time.Duration

	// ask flags
	execute     bool
	allowWrites bool

	// schema flags
	sampleRows int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orchids-agent",
	Short: "Natural-language helper for the Orchids music database",
	Long: `orchids-agent wraps a Gemini model around the music database.

It discovers whatever tables the configured database actually contains,
turns natural-language requests into SQL against them, and can rewrite
files on instruction. Mutating SQL never runs without --allow-writes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// schemaCmd prints the discovered table layout
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the discovered tables, columns and sample values",
	Long: `Walks every table the database connection can see, samples a few
rows from each and prints the layout. This is the same schema summary
that gets embedded in ask prompts.`,
	RunE: runSchema,
}

// askCmd turns a natural-language request into SQL
var askCmd = &cobra.Command{
	Use:   "ask [request]",
	Short: "Turn a natural-language request into SQL",
	Long: `Embeds the discovered schema in a prompt, asks the model for a
single SQL statement and prints it.

With --execute the statement runs against the database. Statements that
mutate data additionally require --allow-writes.

Example:
  orchids-agent ask "five most played taylor swift songs"
  orchids-agent ask --execute "how many playlists are there"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// editCmd rewrites a file per instruction
var editCmd = &cobra.Command{
	Use:   "edit [file] [instruction]",
	Short: "Rewrite a file according to an instruction",
	Long: `Sends the file and the instruction to the model and writes the
rewritten content back. The original is kept next to the file as a .bak
sibling; if the write fails the original is restored.

Example:
  orchids-agent edit config.yaml "switch the database driver to postgres"`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Override the configured Gemini model")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Model call timeout")

	// ask flags
	askCmd.Flags().BoolVar(&execute, "execute", false, "Run the generated SQL against the database")
	askCmd.Flags().BoolVar(&allowWrites, "allow-writes", false, "Permit statements that mutate data")

	// schema flags
	schemaCmd.Flags().IntVar(&sampleRows, "rows", 5, "Rows to sample per table")

	// Add commands to root
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(editCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if model != "" {
		cfg.Agent.Model = model
	}
	return cfg
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	db := database.New(cfg)

	insp := agent.NewInspector(browse.NewGormSource(db.DB), sampleRows)
	tables, err := insp.Inspect()
	if err != nil {
		return err
	}

	logger.Debug("Schema discovered", zap.Int("tables", len(tables)))
	fmt.Print(agent.Summarize(tables))
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	db := database.New(cfg)

	a, err := agent.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// 1. Discover what the database actually contains
	insp := agent.NewInspector(browse.NewGormSource(db.DB), 5)
	tables, err := insp.Inspect()
	if err != nil {
		return err
	}

	// 2. Ask the model
	request := strings.Join(args, " ")
	logger.Info("Generating SQL", zap.String("request", request))

	result, err := a.GenerateSQL(ctx, agent.Summarize(tables), request)
	if err != nil {
		return err
	}
	if verbose {
		logger.Debug("Full model response", zap.String("raw", result.Raw))
	}

	fmt.Println(result.SQL)
	if !execute {
		return nil
	}

	// 3. Execute, with the write guard in front
	exec := agent.NewExecutor(db.DB)
	if agent.IsReadOnly(result.SQL) {
		rows, err := exec.Query(result.SQL)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		logger.Info("Query executed", zap.Int("rows", len(rows)))
		return nil
	}

	if !allowWrites {
		return fmt.Errorf("statement mutates data; rerun with --allow-writes to execute it")
	}
	affected, err := exec.Exec(result.SQL)
	if err != nil {
		return err
	}
	fmt.Printf("%d row(s) affected\n", affected)
	logger.Info("Statement executed", zap.Int64("rows_affected", affected))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	a, err := agent.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	path, instruction := args[0], args[1]
	logger.Info("Editing file", zap.String("path", path), zap.String("instruction", instruction))

	if err := a.EditFile(ctx, path, instruction); err != nil {
		return err
	}
	fmt.Printf("updated %s (original saved as %s.bak)\n", path, path)
	return nil
}
