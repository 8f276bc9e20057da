package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	jpholiday "github.com/rabitt1ove/jp-holidays"
	"gopkg.in/yaml.v3"
)

var (
	errNoOffDateName = errors.New("off-date entry has no name")
	errNoOffDateDay  = errors.New("off-date entry needs either date or from/to")
)

// offDateFile is the YAML document read by -offdates:
//
//	offdates:
//	  - name: 創立記念日
//	    date: 2015-06-15
//	  - name: 年末年始
//	    from: 2015-12-29
//	    to: 2016-01-03
type offDateFile struct {
	OffDates []offDate `yaml:"offdates"`
}

type offDate struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func loadOffDates(path string, cal *jpholiday.Calendar) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return readOffDates(f, cal)
}

// readOffDates registers every entry of the document with cal and returns
// the number of entries read.
func readOffDates(r io.Reader, cal *jpholiday.Calendar) (int, error) {
	var doc offDateFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding off-dates: %w", err)
	}

	for i, od := range doc.OffDates {
		if od.Name == "" {
			return 0, fmt.Errorf("entry %d: %w", i+1, errNoOffDateName)
		}
		switch {
		case od.Date != "":
			day, err := parseDay(od.Date)
			if err != nil {
				return 0, fmt.Errorf("entry %d: %w", i+1, err)
			}
			cal.AddCustomHoliday(day, od.Name)
		case od.From != "" && od.To != "":
			from, err := parseDay(od.From)
			if err != nil {
				return 0, fmt.Errorf("entry %d: %w", i+1, err)
			}
			to, err := parseDay(od.To)
			if err != nil {
				return 0, fmt.Errorf("entry %d: %w", i+1, err)
			}
			cal.AddCustomHolidayRange(from, to, od.Name)
		default:
			return 0, fmt.Errorf("entry %d (%s): %w", i+1, od.Name, errNoOffDateDay)
		}
	}
	return len(doc.OffDates), nil
}

// parseDay reads a YYYY-MM-DD date as a day in JST.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, jst)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
