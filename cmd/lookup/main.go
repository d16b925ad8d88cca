// Command lookup runs the class, division and roll cascade from a terminal.
//
// It loads the sheet once, from -file or from SHEET_CSV_URL, and then either
// lists the options of the next unselected level or prints the matched record:
//
//	lookup -file students.csv                         # classes
//	lookup -file students.csv -class 10               # divisions of class 10
//	lookup -file students.csv -class 10 -division B   # roll numbers
//	lookup -class 10 -division B -roll 2 -json        # the record, from the URL
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/JonMunkholm/rollfinder/internal/config"
	"github.com/JonMunkholm/rollfinder/internal/core"
	"github.com/JonMunkholm/rollfinder/internal/logging"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
	"github.com/joho/godotenv"
)

// errUsage marks a flag error already reported by the flag package.
var errUsage = errors.New("usage")

type options struct {
	file     string
	class    string
	division string
	roll     string
	asJSON   bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.file, "file", "", "read the sheet from a local CSV file instead of SHEET_CSV_URL")
	fs.StringVar(&opts.class, "class", "", "selected class")
	fs.StringVar(&opts.division, "division", "", "selected division")
	fs.StringVar(&opts.roll, "roll", "", "selected roll number")
	fs.BoolVar(&opts.asJSON, "json", false, "print the cascade view as JSON")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetupWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)

	ds, err := loadDataset(ctx, cfg, opts.file)
	if err != nil {
		return err
	}

	v := ds.NewCascade().Replay(opts.class, opts.division, opts.roll)
	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return printView(stdout, ds.Columns(), v)
}

// loadDataset reads the sheet from path when set, otherwise through the
// configured URL using the same service the server runs.
func loadDataset(ctx context.Context, cfg *config.Config, path string) (*core.Dataset, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		text, _, err := sheet.Decode(data)
		if err != nil {
			return nil, err
		}
		return core.BuildDataset(text, core.AliasConfigFrom(cfg.Columns))
	}

	fetcher := sheet.NewFetcher(&http.Client{}, cfg.Source.MaxBytes, cfg.Source.UserAgent)
	svc := core.NewService(cfg, fetcher)
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	ds, _ := svc.Dataset()
	return ds, nil
}

// printView prints the record for a complete selection, or the options of
// the first unselected level.
func printView(w io.Writer, columns []string, v core.View) error {
	var err error
	switch v.Phase {
	case core.PhaseFound:
		width := 0
		for _, col := range columns {
			width = max(width, len(col))
		}
		for _, col := range columns {
			if _, err = fmt.Fprintf(w, "%-*s  %s\n", width, col, v.Record.Get(col)); err != nil {
				return err
			}
		}
	case core.PhaseNotFound:
		_, err = fmt.Fprintln(w, "No matching record")
	case core.PhaseDivisionSelected:
		err = printOptions(w, core.RoleRoll, v.Rolls)
	case core.PhaseClassSelected:
		err = printOptions(w, core.RoleDivision, v.Divisions)
	default:
		err = printOptions(w, core.RoleClass, v.Classes)
	}
	return err
}

func printOptions(w io.Writer, role core.Role, values []string) error {
	if len(values) == 0 {
		_, err := fmt.Fprintf(w, "%s: (none)\n", role.Label())
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", role.Label(), strings.Join(values, ", "))
	return err
}
