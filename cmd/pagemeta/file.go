package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagemeta"
)

// Run executes the file command.
func (c *FileCmd) Run(deps *Dependencies) error {
	html, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	inspector := *deps.Inspector
	if c.XHTML {
		inspector.Parser = deps.XHTMLParser
	}
	if !c.Content {
		inspector.Converter = nil
	}
	if c.Save {
		if c.URL == "" {
			fmt.Fprintln(deps.Stderr, "error: --save requires --url")
			return pagemeta.Errorf(pagemeta.EINVALID, "--save requires --url")
		}
		if deps.Inspections == nil {
			return pagemeta.Errorf(pagemeta.EINTERNAL, "no inspection storage configured")
		}
		inspector.Inspections = deps.Inspections
	}

	in, err := inspector.InspectHTML(deps.Ctx, c.URL, html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, in)
	}
	printInspection(deps.Stdout, in, c.Content)
	return nil
}

func (c *FileCmd) read(deps *Dependencies) (string, error) {
	if c.Path == "-" {
		if deps.Stdin == nil {
			return "", pagemeta.Errorf(pagemeta.EINVALID, "stdin is not available")
		}
		b, err := io.ReadAll(deps.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(c.Path)
	return string(b), err
}
