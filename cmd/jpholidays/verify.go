package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	jpholiday "github.com/rabitt1ove/jp-holidays"
)

type diffKind string

const (
	// diffMissing: the Cabinet Office lists a holiday the rules do not produce.
	diffMissing diffKind = "missing"
	// diffExtra: the rules produce a holiday the Cabinet Office does not list.
	diffExtra diffKind = "extra"
	// diffRenamed: both agree on the date but not on the name.
	diffRenamed diffKind = "renamed"
)

// officialNames maps names produced by the rules to the wording of the
// Cabinet Office CSV, which calls every non-named day off simply 休日.
var officialNames = map[string]string{
	"振替休日":  "休日",
	"国民の休日": "休日",
}

type difference struct {
	Date     time.Time `json:"date"`
	Kind     diffKind  `json:"kind"`
	Official string    `json:"official,omitempty"`
	Computed string    `json:"computed,omitempty"`
}

type verifyReport struct {
	From        int          `json:"from"`
	To          int          `json:"to"`
	Official    int          `json:"official"`
	Computed    int          `json:"computed"`
	Differences []difference `json:"differences"`
}

// verify compares the official list against the statutory and substitute
// holidays computed for the years [from, to]. Custom holidays registered on
// cal are ignored.
func verify(cal *jpholiday.Calendar, official []officialHoliday, from, to int) verifyReport {
	rep := verifyReport{From: from, To: to, Differences: []difference{}}

	listed := make(map[string]officialHoliday)
	for _, h := range official {
		if y := h.date.Year(); y < from || y > to {
			continue
		}
		listed[h.date.Format(time.DateOnly)] = h
		rep.Official++
	}

	computed := make(map[string]jpholiday.Holiday)
	for year := from; year <= to; year++ {
		for _, h := range cal.HolidaysInYear(year) {
			if h.Kind == jpholiday.Custom {
				continue
			}
			computed[h.Date.Format(time.DateOnly)] = h
			rep.Computed++
		}
	}

	for key, o := range listed {
		c, ok := computed[key]
		switch {
		case !ok:
			rep.Differences = append(rep.Differences, difference{Date: o.date, Kind: diffMissing, Official: o.name})
		case !sameName(o.name, c.Name):
			rep.Differences = append(rep.Differences, difference{Date: o.date, Kind: diffRenamed, Official: o.name, Computed: c.Name})
		}
	}
	for key, c := range computed {
		if _, ok := listed[key]; !ok {
			rep.Differences = append(rep.Differences, difference{Date: c.Date, Kind: diffExtra, Computed: c.Name})
		}
	}

	sort.Slice(rep.Differences, func(i, j int) bool {
		return rep.Differences[i].Date.Before(rep.Differences[j].Date)
	})
	return rep
}

func sameName(official, computed string) bool {
	if official == computed {
		return true
	}
	return officialNames[computed] == official
}

func (r verifyReport) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "years %d-%d: %d official, %d computed, %d differences\n",
		r.From, r.To, r.Official, r.Computed, len(r.Differences))
	for _, d := range r.Differences {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Date.Format(time.DateOnly), d.Kind, orDash(d.Official), orDash(d.Computed))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
