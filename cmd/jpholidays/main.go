// Command jpholidays lists Japanese holidays computed by the jpholiday rule
// engine, and can check the engine against the Cabinet Office holiday CSV.
//
// Usage:
//
//	jpholidays -year 2015
//	jpholidays -year 2015 -month 5 -lang en -json
//	jpholidays -year 2015 -offdates offdates.yaml
//	jpholidays -verify -from 1955 -to 2018
//	jpholidays -verify -csv syukujitsu.csv -strict
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	jpholiday "github.com/rabitt1ove/jp-holidays"
	"golang.org/x/text/language"
)

var jst = time.FixedZone("Asia/Tokyo", 9*60*60)

// errDifferences is returned by -verify -strict when the engine and the
// official list disagree.
var errDifferences = errors.New("computed holidays differ from the official list")

type config struct {
	year     int
	month    int
	lang     string
	offDates string
	asJSON   bool

	verify bool
	csv    string
	from   int
	to     int
	strict bool
}

func main() {
	cfg := config{}
	flag.IntVar(&cfg.year, "year", time.Now().In(jst).Year(), "year to list")
	flag.IntVar(&cfg.month, "month", 0, "month to list (1-12, 0 = whole year)")
	flag.StringVar(&cfg.lang, "lang", "ja", "language of holiday and weekday names (BCP 47 tag)")
	flag.StringVar(&cfg.offDates, "offdates", "", "YAML file of company off-days to register")
	flag.BoolVar(&cfg.asJSON, "json", false, "write JSON instead of text")
	flag.BoolVar(&cfg.verify, "verify", false, "compare the rules against the Cabinet Office CSV")
	flag.StringVar(&cfg.csv, "csv", "", "read the Cabinet Office CSV from this file instead of downloading it")
	flag.IntVar(&cfg.from, "from", 1955, "first year to verify")
	flag.IntVar(&cfg.to, "to", 2018, "last year to verify")
	flag.BoolVar(&cfg.strict, "strict", false, "exit with status 1 when -verify finds differences")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("jpholidays: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config, w io.Writer) error {
	if cfg.verify {
		return runVerify(ctx, cfg, w)
	}
	return runList(cfg, w)
}

func runList(cfg config, w io.Writer) error {
	tag, err := language.Parse(cfg.lang)
	if err != nil {
		return fmt.Errorf("invalid -lang %q: %w", cfg.lang, err)
	}
	if cfg.month < 0 || cfg.month > 12 {
		return fmt.Errorf("invalid -month %d", cfg.month)
	}

	cal := jpholiday.New(jpholiday.WithLanguage(tag))
	if cfg.offDates != "" {
		n, err := loadOffDates(cfg.offDates, cal)
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfg.offDates, err)
		}
		log.Printf("registered %d off-date entries from %s", n, cfg.offDates)
	}

	var holidays []jpholiday.Holiday
	if cfg.month == 0 {
		holidays = cal.HolidaysInYear(cfg.year)
	} else {
		holidays = cal.HolidaysInMonth(cfg.year, time.Month(cfg.month))
	}

	if cfg.asJSON {
		type entry struct {
			jpholiday.Holiday
			Weekday string `json:"weekday"`
		}
		entries := make([]entry, 0, len(holidays))
		for _, h := range holidays {
			entries = append(entries, entry{Holiday: h, Weekday: cal.WeekdayName(h.Date)})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, h := range holidays {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Date.Format(time.DateOnly), cal.WeekdayName(h.Date), h.Name, h.Kind)
	}
	return tw.Flush()
}

func runVerify(ctx context.Context, cfg config, w io.Writer) error {
	if cfg.from > cfg.to {
		return fmt.Errorf("-from %d is after -to %d", cfg.from, cfg.to)
	}

	var (
		rc  io.ReadCloser
		err error
	)
	if cfg.csv != "" {
		rc, err = openCSVFile(cfg.csv)
	} else {
		rc, err = newSource().fetch(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch CSV: %w", err)
	}
	defer rc.Close()

	official, err := parseCSV(rc)
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}

	rep := verify(jpholiday.New(), official, cfg.from, cfg.to)
	if cfg.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(rep)
	} else {
		err = rep.writeText(w)
	}
	if err != nil {
		return err
	}

	if cfg.strict && len(rep.Differences) > 0 {
		return fmt.Errorf("%w: %d", errDifferences, len(rep.Differences))
	}
	return nil
}
