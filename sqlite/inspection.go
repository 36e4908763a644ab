package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/pagemeta"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemeta.InspectionService = (*InspectionService)(nil)

const inspectionColumns = `id, url, title, best_title, site_name, description, language, content, content_hash, inspected_at`

// InspectionService implements pagemeta.InspectionService using SQLite.
type InspectionService struct {
	db *DB
}

// NewInspectionService creates a new InspectionService.
func NewInspectionService(db *DB) *InspectionService {
	return &InspectionService{db: db}
}

// CreateInspection stores a new inspection, assigning its ID and
// InspectedAt. ContentHash is derived from Content when not already set.
func (s *InspectionService) CreateInspection(ctx context.Context, in *pagemeta.Inspection) error {
	if err := in.Validate(); err != nil {
		return err
	}

	in.ID = uuid.New().String()
	in.InspectedAt = time.Now().UTC()
	if in.ContentHash == "" && in.Content != "" {
		in.ContentHash = hashContent(in.Content)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspections (`+inspectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.ID, in.URL, toNull(in.Title), toNull(in.BestTitle), toNull(in.SiteName),
		in.Description, in.Language, in.Content, in.ContentHash, formatTime(in.InspectedAt))

	return err
}

// FindInspectionByID retrieves an inspection by ID.
func (s *InspectionService) FindInspectionByID(ctx context.Context, id string) (*pagemeta.Inspection, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+inspectionColumns+` FROM inspections WHERE id = ?`, id)

	in, err := scanInspection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagemeta.Errorf(pagemeta.ENOTFOUND, "inspection not found")
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// FindInspections retrieves inspections matching the filter, newest first.
func (s *InspectionService) FindInspections(ctx context.Context, filter pagemeta.InspectionFilter) ([]*pagemeta.Inspection, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + inspectionColumns + ` FROM inspections WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY inspected_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inspections := []*pagemeta.Inspection{}
	for rows.Next() {
		in, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		inspections = append(inspections, in)
	}

	return inspections, rows.Err()
}

// DeleteInspection permanently removes an inspection.
func (s *InspectionService) DeleteInspection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM inspections WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagemeta.Errorf(pagemeta.ENOTFOUND, "inspection not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInspection(row scanner) (*pagemeta.Inspection, error) {
	var in pagemeta.Inspection
	var title, bestTitle, siteName sql.NullString
	var inspectedAt string

	if err := row.Scan(&in.ID, &in.URL, &title, &bestTitle, &siteName,
		&in.Description, &in.Language, &in.Content, &in.ContentHash, &inspectedAt); err != nil {
		return nil, err
	}

	t, err := parseRFC3339(inspectedAt, "inspected_at")
	if err != nil {
		return nil, err
	}

	in.Title = fromNull(title)
	in.BestTitle = fromNull(bestTitle)
	in.SiteName = fromNull(siteName)
	in.InspectedAt = t
	return &in, nil
}
