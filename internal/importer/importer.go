package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Store is the part of the API storage the importer writes through
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	GetCompanyByName(ctx context.Context, name string) (*model.Company, error)
	CreateCompany(ctx context.Context, company *model.Company) error
	JobTitleExists(ctx context.Context, companyID int64, title string) (bool, error)
	CreateJob(ctx context.Context, job *model.Job) error
	CreateCompanyReview(ctx context.Context, review *model.CompanyReview) error
}

// Config holds importer configuration
type Config struct {
	Logger       *slog.Logger
	Store        Store
	OwnerEmail   string
	OwnerName    string
	ReviewRating int
	Location     *time.Location
}

// Result counts the records of one input file
type Result struct {
	Imported int
	Skipped  int
	Failed   int
}

// ErrOwnerNotLoaded is returned when an import runs before EnsureOwner
var ErrOwnerNotLoaded = errors.New("import owner not loaded")

const progressEvery = 100

// Importer loads crawled postings and company reviews. Imported companies and
// reviews belong to one owner account.
type Importer struct {
	logger       *slog.Logger
	store        Store
	ownerEmail   string
	ownerName    string
	reviewRating int
	loc          *time.Location
	now          func() time.Time

	ownerID   int64
	companies map[string]int64
}

func New(cfg *Config) *Importer {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Importer{
		logger:       cfg.Logger,
		store:        cfg.Store,
		ownerEmail:   cfg.OwnerEmail,
		ownerName:    cfg.OwnerName,
		reviewRating: cfg.ReviewRating,
		loc:          loc,
		now:          time.Now,
		companies:    make(map[string]int64),
	}
}

// EnsureOwner loads the owner account, creating it with an unusable random
// password on first run
func (im *Importer) EnsureOwner(ctx context.Context) error {
	user, err := im.store.GetUserByEmail(ctx, im.ownerEmail)
	switch {
	case err == nil:
		im.ownerID = user.ID
		return nil
	case !domain.IsNotFound(err):
		return fmt.Errorf("failed to load import owner: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	now := im.now()
	user = &model.User{
		Email:        im.ownerEmail,
		PasswordHash: string(hash),
		Name:         im.ownerName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := im.store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create import owner: %w", err)
	}

	im.logger.Info("Created import owner",
		slog.String("email", user.Email),
		slog.Int64("user_id", user.ID),
	)
	im.ownerID = user.ID
	return nil
}

// ImportJobs reads a JSON array of postings. A record that cannot be stored
// is logged and counted; a malformed file stops the import.
func (im *Importer) ImportJobs(ctx context.Context, r io.Reader) (Result, error) {
	var res Result
	if im.ownerID == 0 {
		return res, ErrOwnerNotLoaded
	}

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return res, fmt.Errorf("failed to read jobs file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return res, errors.New("jobs file must hold a JSON array")
	}

	for index := 0; dec.More(); index++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return res, fmt.Errorf("failed to read job record %d: %w", index, err)
		}

		var rec JobRecord
		imported, err := false, json.Unmarshal(raw, &rec)
		if err == nil {
			imported, err = im.importJob(ctx, &rec)
		}

		switch {
		case err != nil:
			res.Failed++
			im.logger.Warn("Failed to import job",
				slog.Int("index", index),
				slog.String("company", rec.CompanyName),
				slog.String("title", rec.JobTitle),
				slog.Any("error", err),
			)
		case imported:
			res.Imported++
		default:
			res.Skipped++
		}

		if (index+1)%progressEvery == 0 {
			im.logger.Info("Importing jobs", slog.Int("processed", index+1))
		}
	}

	return res, nil
}

// importJob reports false when the company already has a job with the title
func (im *Importer) importJob(ctx context.Context, rec *JobRecord) (bool, error) {
	name := strings.TrimSpace(rec.CompanyName)
	title := strings.TrimSpace(rec.JobTitle)
	if name == "" || title == "" {
		return false, errors.New("company name and job title are required")
	}

	companyID, err := im.companyID(ctx, name, &rec.CompanyInfo)
	if err != nil {
		return false, err
	}

	exists, err := im.store.JobTitleExists(ctx, companyID, title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	now := im.now()
	job := &model.Job{
		CompanyID:      companyID,
		Title:          title,
		Description:    jobDescription(rec),
		RequiredSkills: pq.StringArray(cleanSkills(rec.TechStack)),
		RequiredCareer: parseCareer(rec.Details.Career),
		Salary:         parseSalary(rec.Details.Salary),
		Location:       optional(rec.Details.Region),
		JobType:        parseJobType(rec.Details.EmploymentType),
		Deadline:       parseDate(rec.Details.Deadline, im.loc),
		Status:         domain.JobStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if job.Deadline != nil && job.Deadline.Before(now) {
		job.Status = domain.JobStatusClosed
	}

	if err := im.store.CreateJob(ctx, job); err != nil {
		return false, err
	}
	return true, nil
}

// ImportReviews reads one review per line. Blank lines are ignored and a
// second review of the same company is skipped, since each author may
// review a company once.
func (im *Importer) ImportReviews(ctx context.Context, r io.Reader) (Result, error) {
	var res Result
	if im.ownerID == 0 {
		return res, ErrOwnerNotLoaded
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec ReviewRecord
		imported, err := false, json.Unmarshal([]byte(text), &rec)
		if err == nil {
			imported, err = im.importReview(ctx, &rec)
		}

		switch {
		case err != nil:
			res.Failed++
			im.logger.Warn("Failed to import company review",
				slog.Int("line", line),
				slog.String("company", rec.CompanyName),
				slog.Any("error", err),
			)
		case imported:
			res.Imported++
		default:
			res.Skipped++
		}
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read reviews file: %w", err)
	}
	return res, nil
}

func (im *Importer) importReview(ctx context.Context, rec *ReviewRecord) (bool, error) {
	name := strings.TrimSpace(rec.CompanyName)
	title := strings.TrimSpace(rec.Title)
	if name == "" || title == "" {
		return false, errors.New("company name and title are required")
	}

	writtenAt := parseDate(rec.WrittenAt, im.loc)
	if writtenAt == nil {
		return false, fmt.Errorf("invalid review date %q", rec.WrittenAt)
	}

	companyID, err := im.companyID(ctx, name, nil)
	if err != nil {
		return false, err
	}

	review := &model.CompanyReview{
		UserID:            im.ownerID,
		CompanyID:         companyID,
		Rating:            im.reviewRating,
		Title:             title,
		Content:           reviewContent(rec),
		Position:          optional(rec.Department),
		IsCurrentEmployee: strings.Contains(rec.Writer, "현직"),
		CreatedAt:         *writtenAt,
		UpdatedAt:         *writtenAt,
	}

	err = im.store.CreateCompanyReview(ctx, review)
	switch {
	case domain.KindOf(err) == domain.KindDuplicate:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// companyID finds the company by name or creates it. info is nil when the
// source carries no company details.
func (im *Importer) companyID(ctx context.Context, name string, info *CompanyInfo) (int64, error) {
	if id, ok := im.companies[name]; ok {
		return id, nil
	}

	existing, err := im.store.GetCompanyByName(ctx, name)
	switch {
	case err == nil:
		im.companies[name] = existing.ID
		return existing.ID, nil
	case !domain.IsNotFound(err):
		return 0, err
	}

	now := im.now()
	company := &model.Company{
		Name:      name,
		Location:  defaultLocation,
		OwnerID:   im.ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if info != nil {
		company.Industry = optional(info.Industry)
		company.Size = optional(info.Form)
		company.Location = parseLocation(info.Address)
		company.EmployeeCount = parseEmployeeCount(info.Employees)
		company.FoundedYear = parseFoundedYear(info.Founded)
		company.CompanyURL = optional(info.Homepage)
	}

	if err := im.store.CreateCompany(ctx, company); err != nil {
		return 0, err
	}

	im.logger.Debug("Created company",
		slog.String("name", name),
		slog.Int64("company_id", company.ID),
	)
	im.companies[name] = company.ID
	return company.ID, nil
}

func cleanSkills(raw []string) []string {
	skills := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		skills = append(skills, s)
	}
	return skills
}

func reviewContent(rec *ReviewRecord) string {
	var parts []string
	for _, p := range []struct{ label, value string }{
		{"분야", rec.Field},
		{"작성자", rec.Writer},
		{"채용여부", rec.Hiring},
	} {
		if v := strings.TrimSpace(p.value); v != "" {
			parts = append(parts, p.label+": "+v)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(rec.Title)
	}
	return strings.Join(parts, "\n")
}
