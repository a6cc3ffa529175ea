package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx/types"
)

type ApplicantGroupService struct {
	store  ApplicantGroupStore
	logger *slog.Logger
	now    func() time.Time
}

func NewApplicantGroupService(store ApplicantGroupStore, logger *slog.Logger) *ApplicantGroupService {
	return &ApplicantGroupService{store: store, logger: logger, now: time.Now}
}

// MembershipChange reports the outcome of adding applicants to a group
type MembershipChange struct {
	GroupID         int64
	Added           int
	TotalApplicants int
}

func (s *ApplicantGroupService) requireOwner(ctx context.Context, companyID, requesterID int64) error {
	company, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return notFoundOr(err, "company not found", "failed to load company")
	}
	if company.OwnerID != requesterID {
		return domain.NewForbidden("only the company administrator can manage applicant groups")
	}
	return nil
}

func (s *ApplicantGroupService) Create(ctx context.Context, requesterID, companyID int64, name string, description *string) (*model.ApplicantGroup, error) {
	if companyID <= 0 {
		return nil, domain.NewValidation("companyId is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidation("name is required")
	}
	if err := s.requireOwner(ctx, companyID, requesterID); err != nil {
		return nil, err
	}

	now := s.now()
	group := model.ApplicantGroup{
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		Status:      domain.GroupStatusActive,
		Metadata:    types.JSONText("{}"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateApplicantGroup(ctx, &group); err != nil {
		return nil, unexpected("failed to create applicant group", err)
	}
	return &group, nil
}

func (s *ApplicantGroupService) ListByCompany(ctx context.Context, requesterID, companyID int64, page model.Pagination) (*Page[model.ApplicantGroupDetail], error) {
	if err := s.requireOwner(ctx, companyID, requesterID); err != nil {
		return nil, err
	}

	page = normalizePage(page, defaultPageLimit)
	items, total, err := s.store.ListApplicantGroups(ctx, companyID, page)
	if err != nil {
		return nil, unexpected("failed to list applicant groups", err)
	}
	return newPage(items, total, page), nil
}

// loadOwned returns the group when the requester administers its company
func (s *ApplicantGroupService) loadOwned(ctx context.Context, groupID, requesterID int64) (*model.ApplicantGroup, error) {
	group, err := s.store.GetApplicantGroup(ctx, groupID)
	if err != nil {
		return nil, notFoundOr(err, "applicant group not found", "failed to load applicant group")
	}
	if err := s.requireOwner(ctx, group.CompanyID, requesterID); err != nil {
		return nil, err
	}
	return group, nil
}

// AddApplicants puts applications into the group. Applications to other
// companies' jobs are skipped.
func (s *ApplicantGroupService) AddApplicants(ctx context.Context, groupID, requesterID int64, applicationIDs []int64) (*MembershipChange, error) {
	if len(applicationIDs) == 0 {
		return nil, domain.NewValidation("applicationIds must not be empty")
	}
	for _, id := range applicationIDs {
		if id <= 0 {
			return nil, domain.NewValidation("applicationIds must be positive integers").With("applicationId", id)
		}
	}

	group, err := s.loadOwned(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	added, total, err := s.store.AddGroupMembers(ctx, group.ID, group.CompanyID, applicationIDs, s.now())
	if err != nil {
		return nil, unexpected("failed to add applicants", err)
	}

	if skipped := len(applicationIDs) - added; skipped > 0 {
		s.logger.Debug("Some applications were not added to group",
			slog.Int64("group_id", group.ID),
			slog.Int("requested", len(applicationIDs)),
			slog.Int("added", added),
		)
	}

	return &MembershipChange{GroupID: group.ID, Added: added, TotalApplicants: total}, nil
}

// Statistics summarizes the group's members and keeps the result in the
// group metadata
func (s *ApplicantGroupService) Statistics(ctx context.Context, groupID, requesterID int64) (*model.GroupStatistics, error) {
	group, err := s.loadOwned(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, unexpected("failed to load group members", err)
	}

	stats := computeGroupStatistics(members)

	raw, err := json.Marshal(map[string]any{"statistics": stats, "computedAt": s.now()})
	if err == nil {
		err = s.store.UpdateGroupMetadata(ctx, group.ID, raw, s.now())
	}
	if err != nil {
		s.logger.Warn("Failed to store group statistics",
			slog.Int64("group_id", group.ID),
			slog.String("error", err.Error()),
		)
	}

	return stats, nil
}

func computeGroupStatistics(members []model.GroupMember) *model.GroupStatistics {
	stats := &model.GroupStatistics{
		TotalApplicants:    len(members),
		StatusDistribution: map[string]int{},
		SkillDistribution:  map[string]int{},
	}
	if len(members) == 0 {
		return stats
	}

	totalCareer := 0
	for _, m := range members {
		totalCareer += m.Career
		stats.StatusDistribution[m.Status]++
		for _, skill := range m.SkillSet {
			stats.SkillDistribution[skill]++
		}
	}

	avg := float64(totalCareer) / float64(len(members))
	stats.AverageCareer = math.Round(avg*10) / 10
	return stats
}
