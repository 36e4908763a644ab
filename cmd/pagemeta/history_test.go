package main_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pagemeta"
	main "github.com/fwojciec/pagemeta/cmd/pagemeta"
	"github.com/fwojciec/pagemeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists inspections", func(t *testing.T) {
		t.Parallel()

		var got pagemeta.InspectionFilter
		deps, stdout, _ := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			FindInspectionsFn: func(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
				got = filter
				return []*pagemeta.Inspection{
					{
						ID:          "insp-1",
						URL:         "https://acme.test/pricing",
						BestTitle:   ptr("Pricing | Acme"),
						InspectedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
					},
					{ID: "insp-2", URL: "https://acme.test/blank"},
				}, nil
			},
		}
		cmd := &main.HistoryCmd{URL: "https://ACME.test/pricing", Limit: 20}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.URL)
		assert.Equal(t, "https://acme.test/pricing", *got.URL)
		assert.Equal(t, 20, got.Limit)
		output := stdout.String()
		assert.Contains(t, output, "insp-1")
		assert.Contains(t, output, "Pricing | Acme")
		assert.Contains(t, output, "insp-2")
		assert.Contains(t, output, "(none)")
	})

	t.Run("shows helpful message when empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			FindInspectionsFn: func(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
				return []*pagemeta.Inspection{}, nil
			},
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No inspections found")
	})

	t.Run("prints an empty json array", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			FindInspectionsFn: func(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
				return []*pagemeta.Inspection{}, nil
			},
		}

		err := (&main.HistoryCmd{JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "[]\n", stdout.String())
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			FindInspectionsFn: func(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
				return nil, errors.New("disk I/O error")
			},
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error.")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the inspection with content", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			FindInspectionByIDFn: func(ctx context.Context, id string) (*pagemeta.Inspection, error) {
				return &pagemeta.Inspection{
					ID:       id,
					URL:      "https://acme.test/pricing",
					Title:    ptr("Pricing | Acme"),
					SiteName: ptr(""),
					Content:  "# Pricing\n\nPlans for every team.\n",
				}, nil
			},
		}

		err := (&main.ShowCmd{ID: "insp-1"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "id:          insp-1")
		assert.Contains(t, output, "best title:  (none)")
		assert.Contains(t, output, "site name:   \n")
		assert.Contains(t, output, "# Pricing")
	})

	t.Run("explains a missing inspection", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			FindInspectionByIDFn: func(ctx context.Context, id string) (*pagemeta.Inspection, error) {
				return nil, pagemeta.Errorf(pagemeta.ENOTFOUND, "inspection not found")
			},
		}

		err := (&main.ShowCmd{ID: "nope"}).Run(deps)

		assert.Equal(t, pagemeta.ENOTFOUND, pagemeta.ErrorCode(err))
		assert.Contains(t, stderr.String(), `inspection "nope" not found`)
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes the inspection", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, stdout, _ := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			DeleteInspectionFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		err := (&main.DeleteCmd{ID: "insp-1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "insp-1", deleted)
		assert.Contains(t, stdout.String(), "Deleted inspection insp-1")
	})

	t.Run("explains a missing inspection", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil)
		deps.Inspections = &mock.InspectionService{
			DeleteInspectionFn: func(ctx context.Context, id string) error {
				return pagemeta.Errorf(pagemeta.ENOTFOUND, "inspection not found")
			},
		}

		err := (&main.DeleteCmd{ID: "nope"}).Run(deps)

		assert.Equal(t, pagemeta.ENOTFOUND, pagemeta.ErrorCode(err))
		assert.Contains(t, stderr.String(), "pagemeta history")
	})
}
