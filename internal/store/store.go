package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elimuhub/opportunity-finder/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type ListParams struct {
	Query  string
	Type   string
	County string
	Source string
	Limit  int
	Offset int
}

// details bundles the per-type detail blocks into one JSONB column.
type details struct {
	Bootcamp   *models.BootcampDetails   `json:"bootcamp,omitempty"`
	Learning   *models.LearningDetails   `json:"learning,omitempty"`
	Mentorship *models.MentorshipDetails `json:"mentorship,omitempty"`
	Internship *models.InternshipDetails `json:"internship,omitempty"`
	Contact    *models.ContactInfo       `json:"contact,omitempty"`
}

// Save upserts one record keyed on (source, application_link) and returns
// the row id. Re-running a sync updates rows in place instead of piling up
// duplicates.
func (s *Store) Save(ctx context.Context, opp models.Opportunity, runID string) (string, error) {
	eligJSON, err := json.Marshal(opp.Eligibility)
	if err != nil {
		return "", fmt.Errorf("error encoding eligibility: %w", err)
	}
	detJSON, err := json.Marshal(details{
		Bootcamp:   opp.BootcampDetails,
		Learning:   opp.LearningDetails,
		Mentorship: opp.MentorshipDetails,
		Internship: opp.InternshipDetails,
		Contact:    opp.ContactInfo,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding details: %w", err)
	}

	var deadline *string
	if opp.ApplicationDeadline != "" {
		deadline = &opp.ApplicationDeadline
	}
	var run *string
	if runID != "" {
		run = &runID
	}

	var id string
	err = s.pool.QueryRow(ctx, `
		INSERT INTO opportunities (
			name, provider, type, description, amount, duration,
			application_deadline, application_link, eligibility, details,
			requirements, documents, notes, priority, source, run_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (source, application_link) DO UPDATE SET
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			duration = EXCLUDED.duration,
			application_deadline = EXCLUDED.application_deadline,
			eligibility = EXCLUDED.eligibility,
			details = EXCLUDED.details,
			requirements = EXCLUDED.requirements,
			documents = EXCLUDED.documents,
			notes = EXCLUDED.notes,
			priority = EXCLUDED.priority,
			run_id = EXCLUDED.run_id,
			updated_at = NOW()
		RETURNING id
	`,
		opp.Name, opp.Provider, string(opp.Type), opp.Description, opp.Amount,
		opp.Duration, deadline, opp.ApplicationLink, eligJSON, detJSON,
		opp.Requirements, opp.Documents, opp.Notes, opp.Priority, opp.Source, run,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error saving opportunity %q: %w", opp.Name, err)
	}
	return id, nil
}

// SaveAll saves every record, collecting per-record failures instead of
// stopping at the first. Returns the number saved.
func (s *Store) SaveAll(ctx context.Context, records []models.Opportunity, runID string) (int, error) {
	saved := 0
	var errs []string
	for _, opp := range records {
		if _, err := s.Save(ctx, opp, runID); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		saved++
	}
	if len(errs) > 0 {
		return saved, fmt.Errorf("saved %d of %d records: %s", saved, len(records), strings.Join(errs, "; "))
	}
	return saved, nil
}

// Query lists stored records matching the params.
func (s *Store) Query(ctx context.Context, params ListParams) ([]models.Opportunity, error) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Query != "" {
		p := arg("%" + params.Query + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR provider ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if params.Type != "" {
		conds = append(conds, "type = "+arg(params.Type))
	}
	if params.Source != "" {
		conds = append(conds, "source = "+arg(params.Source))
	}
	if params.County != "" {
		conds = append(conds, "eligibility->'counties' ? "+arg(params.County))
	}

	query := `
		SELECT name, provider, type, description, amount, duration,
			COALESCE(to_char(application_deadline, 'YYYY-MM-DD'), ''),
			application_link, eligibility, details,
			requirements, documents, notes, priority, source
		FROM opportunities`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY priority DESC, name ASC"
	if params.Limit > 0 {
		query += " LIMIT " + arg(params.Limit)
	}
	if params.Offset > 0 {
		query += " OFFSET " + arg(params.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying opportunities: %w", err)
	}
	defer rows.Close()

	var out []models.Opportunity
	for rows.Next() {
		var opp models.Opportunity
		var typ string
		var eligRaw, detRaw []byte
		err := rows.Scan(
			&opp.Name, &opp.Provider, &typ, &opp.Description, &opp.Amount,
			&opp.Duration, &opp.ApplicationDeadline, &opp.ApplicationLink,
			&eligRaw, &detRaw, &opp.Requirements, &opp.Documents,
			&opp.Notes, &opp.Priority, &opp.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning opportunity row: %w", err)
		}
		opp.Type = models.Type(typ)
		if len(eligRaw) > 0 {
			_ = json.Unmarshal(eligRaw, &opp.Eligibility)
		}
		if len(detRaw) > 0 {
			var d details
			if json.Unmarshal(detRaw, &d) == nil {
				opp.BootcampDetails = d.Bootcamp
				opp.LearningDetails = d.Learning
				opp.MentorshipDetails = d.Mentorship
				opp.InternshipDetails = d.Internship
				opp.ContactInfo = d.Contact
			}
		}
		out = append(out, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunity rows: %w", err)
	}
	return out, nil
}
