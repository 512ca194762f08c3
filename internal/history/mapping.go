package history

import (
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/image-forge/pkg/query"
	"github.com/JaimeStill/image-forge/pkg/repository"
)

var projection = query.NewProjectionMap("public", "batches", "b").
	Project("id", "ID").
	Project("operation", "Operation").
	Project("total", "Total").
	Project("succeeded", "Succeeded").
	Project("failed", "Failed").
	Project("started_at", "StartedAt").
	Project("finished_at", "FinishedAt")

var defaultSort = query.SortField{Field: "StartedAt", Descending: true}

func scanBatch(s repository.Scanner) (Batch, error) {
	var b Batch
	err := s.Scan(
		&b.ID,
		&b.Operation,
		&b.Total,
		&b.Succeeded,
		&b.Failed,
		&b.StartedAt,
		&b.FinishedAt,
	)
	return b, err
}

// Filters defines optional criteria for listing batches.
type Filters struct {
	Operation  *string
	FailedOnly bool
	Since      *time.Time
}

// FiltersFromQuery reads operation, failed and since (RFC 3339) from query
// parameters. Unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if op := values.Get("operation"); op != "" {
		f.Operation = &op
	}

	if v := values.Get("failed"); v != "" {
		if failed, err := strconv.ParseBool(v); err == nil {
			f.FailedOnly = failed
		}
	}

	if v := values.Get("since"); v != "" {
		if since, err := time.Parse(time.RFC3339, v); err == nil {
			f.Since = &since
		}
	}

	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Operation != nil {
		b.WhereEquals("Operation", *f.Operation)
	}
	if f.FailedOnly {
		b.WhereGreater("Failed", 0)
	}
	if f.Since != nil {
		b.WhereAtLeast("StartedAt", *f.Since)
	}
	return b
}
