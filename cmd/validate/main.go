// Command validate checks that every statement in a folder can be decoded
// and has a recognized header.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"expenses/internal/config"
	"expenses/internal/logger"
	"expenses/internal/services/dataloader"
	"expenses/internal/services/storage"
)

var (
	pass = color.New(color.FgGreen).SprintFunc()
	fail = color.New(color.FgRed).SprintFunc()
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.StatementsDirectory, "dir", cfg.StatementsDirectory, "Directory containing the CSV bank statements")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.New(stderr, cfg.Debug)

	store, err := storage.New(cfg.StatementsDirectory)
	if err != nil {
		log.Error().Err(err).Msg("could not open statements")
		return 1
	}
	if store.IsEncrypted() {
		passphrase := cfg.Passphrase
		if passphrase == "" {
			if passphrase, err = prompt(); err != nil {
				log.Error().Err(err).Msg("could not read passphrase")
				return 1
			}
		}
		if err := store.Unlock(passphrase); err != nil {
			log.Error().Err(err).Msg("could not unlock statements")
			return 1
		}
		defer store.Lock()
	}

	// the loader logs per file; keep that out of the report unless asked
	loaderLog := log.Level(zerolog.WarnLevel)
	if *verbose {
		loaderLog = log
	}
	result, err := dataloader.New(store, loaderLog).LoadData()
	if err != nil {
		log.Error().Err(err).Msg("could not list statements")
		return 1
	}

	fmt.Fprintf(stdout, "Validating statements in %s\n", store.Dir())
	fmt.Fprintf(stdout, "Checking %d files...\n\n", len(result.Files))

	var passed, failed int
	for _, f := range result.Files {
		if err := check(f); err != nil {
			failed++
			fmt.Fprintf(stdout, "%s %s\n", fail("FAIL"), f.Name)
			fmt.Fprintf(stdout, "     Error: %v\n", err)
			continue
		}
		passed++
		fmt.Fprintf(stdout, "%s %s (%s, %s, header line %d, %d expenses of %d rows)\n",
			pass("PASS"), f.Name, f.Encoding, f.Format, f.HeaderLine+1, f.Expenses, f.Rows)
	}

	fmt.Fprintf(stdout, "\n========================================\n")
	fmt.Fprintf(stdout, "Results: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		return 1
	}
	return 0
}

// check turns a file report into a validation error
func check(f dataloader.FileReport) error {
	if f.Err != nil {
		return f.Err
	}
	if !f.Recognized() {
		return errors.New("no CAMT or Debit/Credit header found")
	}
	return nil
}

func prompt() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("statements are encrypted, set EXPENSES_PASSPHRASE")
	}
	fmt.Fprint(os.Stderr, "Passphrase: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(b), err
}
