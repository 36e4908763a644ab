package main

import (
	"fmt"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/bloom"
	"github.com/fwojciec/pagemeta/inspect"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	urls := c.URLs

	if c.Sitemap {
		discovered, err := c.discover(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
			return err
		}
		urls = discovered
	}

	if c.SkipSeen {
		unseen, err := skipSeen(deps, urls)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
			return err
		}
		urls = unseen
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to inspect.")
		return nil
	}

	inspector := *deps.Inspector
	if c.Concurrency > 0 {
		inspector.Concurrency = c.Concurrency
	}
	if !c.Content {
		inspector.Converter = nil
	}
	if c.Save {
		if deps.Inspections == nil {
			return pagemeta.Errorf(pagemeta.EINTERNAL, "no inspection storage configured")
		}
		inspector.Inspections = deps.Inspections
	}

	progress := func(event inspect.ProgressEvent) {
		if event.Total < 2 {
			return
		}
		switch event.Type {
		case inspect.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Inspecting %d pages\n", event.Total)
		case inspect.ProgressFinished:
			fmt.Fprintf(deps.Stderr, "Inspected %d pages\n", event.Completed)
		}
	}

	results, err := inspector.InspectAll(deps.Ctx, urls, progress)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", r.URL, r.Err)
			continue
		}
		if c.JSON {
			if err := writeJSON(deps.Stdout, r.Inspection); err != nil {
				return err
			}
			continue
		}
		printInspection(deps.Stdout, r.Inspection, c.Content)
	}

	if failed := inspect.Failed(results); failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d of %d pages failed", failed, len(results))
	}
	return nil
}

// discover expands each site URL into the page URLs its sitemaps list.
func (c *InspectCmd) discover(deps *Dependencies) ([]string, error) {
	filter, err := pagemeta.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, site := range c.URLs {
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, site, filter)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			fmt.Fprintf(deps.Stderr, "No sitemap URLs found for %s\n", site)
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// skipSeen drops URLs that have a stored inspection. The history is loaded
// into a bloom filter, so a URL is very rarely skipped without having been
// seen.
func skipSeen(deps *Dependencies, urls []string) ([]string, error) {
	if deps.Inspections == nil {
		return nil, pagemeta.Errorf(pagemeta.EINTERNAL, "no inspection storage configured")
	}
	history, err := deps.Inspections.FindInspections(deps.Ctx, pagemeta.InspectionFilter{})
	if err != nil {
		return nil, err
	}

	seenURLs := make([]string, 0, len(history))
	for _, in := range history {
		seenURLs = append(seenURLs, in.URL)
	}
	seen := bloom.NewFilterFromURLs(seenURLs)
	if len(seenURLs) > 0 {
		fmt.Fprintf(deps.Stderr, "Checking against ~%d previously inspected pages\n", seen.EstimatedCount())
	}

	unseen := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Test(u) {
			fmt.Fprintf(deps.Stderr, "  seen %s\n", u)
			continue
		}
		unseen = append(unseen, u)
	}
	return unseen, nil
}
