package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
)

const companyColumns = `c.id, c.name, c.industry, c.size, c.location, c.employee_count, c.founded_year,
	c.company_url, c.owner_id, c.created_at, c.updated_at`

var companySortColumns = map[string]string{
	"createdAt":     "c.created_at",
	"name":          "c.name",
	"foundedYear":   "c.founded_year",
	"employeeCount": "c.employee_count",
}

func (s *Storage) CreateCompany(ctx context.Context, company *model.Company) error {
	query := `
		INSERT INTO companies (
			name, industry, size, location, employee_count,
			founded_year, company_url, owner_id, created_at, updated_at
		) VALUES (
			:name, :industry, :size, :location, :employee_count,
			:founded_year, :company_url, :owner_id, :created_at, :updated_at
		)
		RETURNING id
	`

	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, company)
	if err != nil {
		return translate("failed to create company", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&company.ID); err != nil {
			return translate("failed to read company id", err)
		}
	}
	return translate("failed to create company", rows.Err())
}

func (s *Storage) GetCompanyByID(ctx context.Context, id int64) (*model.Company, error) {
	var company model.Company
	err := s.db.GetContext(ctx, &company, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id)
	if err != nil {
		return nil, translate("failed to get company", err)
	}
	return &company, nil
}

func (s *Storage) GetCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	err := s.db.GetContext(ctx, &company, `SELECT `+companyColumns+` FROM companies c WHERE c.name = $1`, name)
	if err != nil {
		return nil, translate("failed to get company", err)
	}
	return &company, nil
}

// CompanyNameTaken reports whether another company already uses name
func (s *Storage) CompanyNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.GetContext(ctx, &taken,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE name = $1 AND id <> $2)`, name, excludeID)
	if err != nil {
		return false, translate("failed to check company name", err)
	}
	return taken, nil
}

func (s *Storage) CompanyExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id)
	if err != nil {
		return false, translate("failed to check company", err)
	}
	return exists, nil
}

func (s *Storage) ListCompanies(ctx context.Context, filter model.CompanyFilter) ([]model.CompanyWithStats, int, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.Keyword != "" {
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR c.industry ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Keyword+"%")
		argIdx++
	}

	if filter.Industry != "" {
		where = append(where, fmt.Sprintf("c.industry = $%d", argIdx))
		args = append(args, filter.Industry)
		argIdx++
	}

	whereSQL := strings.Join(where, " AND ")

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM companies c WHERE `+whereSQL, args...); err != nil {
		return nil, 0, translate("failed to count companies", err)
	}

	query := `
		SELECT ` + companyColumns + `,
			(SELECT COUNT(*) FROM jobs j WHERE j.company_id = c.id) AS job_count
		FROM companies c
		WHERE ` + whereSQL + `
		ORDER BY ` + orderBy(companySortColumns, filter.SortBy, filter.Order, "c.created_at") + `, c.id DESC
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	var companies []model.CompanyWithStats
	if err := s.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, 0, translate("failed to list companies", err)
	}

	return companies, total, nil
}

func (s *Storage) UpdateCompany(ctx context.Context, company *model.Company) error {
	query := `
		UPDATE companies
		SET name = :name, industry = :industry, size = :size, location = :location,
			employee_count = :employee_count, founded_year = :founded_year,
			company_url = :company_url, updated_at = :updated_at
		WHERE id = :id
	`

	_, err := s.db.NamedExecContext(ctx, query, company)
	return translate("failed to update company", err)
}

// DeleteCompany removes the company and the bookmarks pointing at it or its
// jobs. Jobs and their applications go with the foreign key cascade.
func (s *Storage) DeleteCompany(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM bookmarks
			WHERE (target_type = 'company' AND target_id = $1)
			   OR (target_type = 'job' AND target_id IN (SELECT id FROM jobs WHERE company_id = $1))
		`, id)
		if err != nil {
			return translate("failed to delete company bookmarks", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
			return translate("failed to delete company", err)
		}
		return nil
	})
}

func (s *Storage) ListJobsByCompany(ctx context.Context, companyID int64) ([]model.Job, error) {
	var jobs []model.Job
	err := s.db.SelectContext(ctx, &jobs,
		`SELECT `+jobColumns+` FROM jobs j WHERE j.company_id = $1 ORDER BY j.created_at DESC`, companyID)
	if err != nil {
		return nil, translate("failed to list company jobs", err)
	}
	return jobs, nil
}
