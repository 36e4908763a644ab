package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/pagemeta"
)

// none is printed in place of values that have no candidate at all.
const none = "(none)"

func orNone(s *string) string {
	if s == nil {
		return none
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printInspection writes a human-readable summary of in.
func printInspection(w io.Writer, in *pagemeta.Inspection, withContent bool) {
	if in.URL != "" {
		fmt.Fprintln(w, in.URL)
	}
	fmt.Fprintf(w, "  title:       %s\n", orNone(in.Title))
	fmt.Fprintf(w, "  best title:  %s\n", orNone(in.BestTitle))
	fmt.Fprintf(w, "  site name:   %s\n", orNone(in.SiteName))
	fmt.Fprintf(w, "  description: %s\n", orDash(in.Description))
	fmt.Fprintf(w, "  language:    %s\n", orDash(in.Language))
	if in.ID != "" {
		fmt.Fprintf(w, "  id:          %s\n", in.ID)
		fmt.Fprintf(w, "  inspected:   %s\n", in.InspectedAt.Local().Format(time.DateTime))
	}
	if withContent && in.Content != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimRight(in.Content, "\n"))
	}
}

// writeJSON writes v as a single line of JSON.
func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
