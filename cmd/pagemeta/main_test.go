package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagemeta"
	main "github.com/fwojciec/pagemeta/cmd/pagemeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against dbPath with a config that keeps language
// detection small.
func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	cfg := writeConfig(t, "languages: [en, de]\n")
	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), append([]string{"--config", cfg}, args...), stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_StoredInspectionLifecycle(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "pagemeta.db")
	page := writeFile(t, "pricing.html", pricingHTML)

	stdout, _, err := run(t, dbPath, "file", "--save", "--url", "https://acme.test/pricing", page)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pricing | Acme")

	stdout, _, err = run(t, dbPath, "history", "--json")
	require.NoError(t, err)
	var history []*pagemeta.Inspection
	require.NoError(t, json.Unmarshal([]byte(stdout), &history))
	require.Len(t, history, 1)
	id := history[0].ID
	assert.Equal(t, "https://acme.test/pricing", history[0].URL)
	require.NotNil(t, history[0].Title)
	assert.Equal(t, "Pricing | Acme", *history[0].Title)
	assert.Nil(t, history[0].SiteName)

	stdout, _, err = run(t, dbPath, "show", id)
	require.NoError(t, err)
	assert.Contains(t, stdout, "description: Plans for every team")

	stdout, _, err = run(t, dbPath, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted inspection "+id)

	_, stderr, err := run(t, dbPath, "show", id)
	assert.Equal(t, pagemeta.ENOTFOUND, pagemeta.ErrorCode(err))
	assert.Contains(t, stderr, "not found")
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "extractor: nope\n")
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "pagemeta.db")

	err := m.Run(context.Background(), []string{"--config", cfg, "history"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
	assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
}
