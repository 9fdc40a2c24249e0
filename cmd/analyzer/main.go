// Command analyzer summarizes bank statement expenses by category.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"expenses/internal/chart"
	"expenses/internal/config"
	"expenses/internal/logger"
	"expenses/internal/models"
	"expenses/internal/services/analysis"
	"expenses/internal/services/classifier"
	"expenses/internal/services/dataloader"
	"expenses/internal/services/storage"
	"expenses/internal/version"
)

// readPassword prompts on the terminal; replaced in tests
var readPassword = func(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal to read the passphrase from, set EXPENSES_PASSPHRASE")
	}
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	if len(args) > 0 && (args[0] == "encrypt" || args[0] == "decrypt") {
		return runVault(args[0], args[1:], cfg, stdout, stderr)
	}

	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.StatementsDirectory, "dir", cfg.StatementsDirectory, "Directory containing the CSV bank statements")
	fs.StringVar(&cfg.ChartDirectory, "charts", cfg.ChartDirectory, "Directory the pie charts are written to")
	fs.StringVar(&cfg.CategoriesFile, "categories", cfg.CategoriesFile, "YAML file with the category keyword table")
	mode := fs.String("mode", string(cfg.Mode), "Report mode: monthly, aggregate or audit")
	audit := fs.Bool("audit-categories", false, "Print categories and their transactions instead of creating charts")
	noCharts := fs.Bool("no-charts", false, "Do not write pie charts")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	showVersion := fs.Bool("version", false, "Print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.Get("analyzer"))
		return 0
	}

	cfg.Mode = config.Mode(*mode)
	if *audit {
		cfg.Mode = config.ModeAudit
	}

	log := logger.New(stderr, cfg.Debug)
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	rules, err := loadRules(cfg.CategoriesFile)
	if err != nil {
		log.Error().Err(err).Msg("could not load category rules")
		return 1
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Error().Err(err).Str("dir", cfg.StatementsDirectory).Msg("could not open statements")
		return 1
	}
	defer store.Lock()

	var charts analysis.ChartSink
	if !*noCharts {
		charts = chart.New(cfg.ChartDirectory)
	}

	loader := dataloader.New(store, logger.Component(log, "dataloader"))
	analyzer := analysis.New(loader, rules, charts, stdout, logger.Component(log, "analysis"))

	log.Info().Str("mode", string(cfg.Mode)).Str("dir", cfg.StatementsDirectory).Msg("starting bank statement analysis")
	switch cfg.Mode {
	case config.ModeAggregate:
		_, err = analyzer.RunAggregate()
	case config.ModeAudit:
		_, err = analyzer.RunAudit()
	default:
		_, err = analyzer.RunMonthly()
	}
	if err != nil {
		logRunError(log, err)
		return 1
	}
	return 0
}

func logRunError(log zerolog.Logger, err error) {
	var dateErr *models.InvalidDateError
	if errors.As(err, &dateErr) {
		t := dateErr.Transaction
		log.Error().
			Str("date", t.Date).
			Str("beneficiary", t.Beneficiary).
			Str("description", t.Description).
			Str("amount", t.Amount.String()).
			Str("file", t.SourceFile).
			Msg("no valid date found in transaction")
		return
	}
	log.Error().Err(err).Msg("analysis failed")
}

func loadRules(path string) (*classifier.Rules, error) {
	if path == "" {
		return classifier.DefaultRules(), nil
	}
	return classifier.LoadRules(path)
}

// openStore opens the statements folder and unlocks it when encrypted
func openStore(cfg *config.Config) (*storage.Storage, error) {
	store, err := storage.New(cfg.StatementsDirectory)
	if err != nil {
		return nil, err
	}
	if !store.IsEncrypted() {
		return store, nil
	}

	pass := cfg.Passphrase
	if pass == "" {
		if pass, err = readPassword("Passphrase: "); err != nil {
			return nil, err
		}
	}
	if err := store.Unlock(pass); err != nil {
		return nil, err
	}
	return store, nil
}

// runVault encrypts or decrypts the statements folder in place
func runVault(cmd string, args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyzer "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.StatementsDirectory, "dir", cfg.StatementsDirectory, "Directory containing the CSV bank statements")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.New(stderr, cfg.Debug)
	store, err := storage.New(cfg.StatementsDirectory)
	if err != nil {
		log.Error().Err(err).Msg("could not open statements")
		return 1
	}

	pass := cfg.Passphrase
	if pass == "" {
		if pass, err = promptPassphrase(cmd == "encrypt"); err != nil {
			log.Error().Err(err).Msg("could not read passphrase")
			return 1
		}
	}

	if cmd == "encrypt" {
		err = store.EncryptStatements(pass)
	} else {
		err = store.DecryptStatements(pass)
	}
	if err != nil {
		log.Error().Err(err).Str("dir", store.Dir()).Msgf("could not %s statements", cmd)
		return 1
	}

	fmt.Fprintf(stdout, "Statements in %s %sed\n", store.Dir(), cmd)
	return 0
}

func promptPassphrase(confirm bool) (string, error) {
	pass, err := readPassword("Passphrase: ")
	if err != nil || !confirm {
		return pass, err
	}
	again, err := readPassword("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if again != pass {
		return "", errors.New("passphrases do not match")
	}
	return pass, nil
}
