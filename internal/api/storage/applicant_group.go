package storage

import (
	"context"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const applicantGroupColumns = `id, company_id, name, description, status, total_applicants, metadata, created_at, updated_at`

const groupMemberSelect = `
	SELECT m.group_id, a.id AS application_id, u.id AS user_id, u.name AS user_name,
		u.career, u.skill_set, a.status, j.title AS job_title
	FROM applicant_group_members m
	JOIN applications a ON a.id = m.application_id
	JOIN users u ON u.id = a.user_id
	JOIN jobs j ON j.id = a.job_id
`

func (s *Storage) CreateApplicantGroup(ctx context.Context, group *model.ApplicantGroup) error {
	query := `
		INSERT INTO applicant_groups (
			company_id, name, description, status, total_applicants, metadata, created_at, updated_at
		) VALUES (
			:company_id, :name, :description, :status, 0, :metadata, :created_at, :updated_at
		)
		RETURNING id
	`

	rows, err := sqlx.NamedQueryContext(ctx, s.db, query, group)
	if err != nil {
		return translate("failed to create applicant group", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&group.ID); err != nil {
			return translate("failed to read applicant group id", err)
		}
	}
	return translate("failed to create applicant group", rows.Err())
}

func (s *Storage) GetApplicantGroup(ctx context.Context, id int64) (*model.ApplicantGroup, error) {
	var group model.ApplicantGroup
	err := s.db.GetContext(ctx, &group, `SELECT `+applicantGroupColumns+` FROM applicant_groups WHERE id = $1`, id)
	if err != nil {
		return nil, translate("failed to get applicant group", err)
	}
	return &group, nil
}

// ListApplicantGroups returns a page of groups with their members attached
func (s *Storage) ListApplicantGroups(ctx context.Context, companyID int64, page model.Pagination) ([]model.ApplicantGroupDetail, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applicant_groups WHERE company_id = $1`, companyID); err != nil {
		return nil, 0, translate("failed to count applicant groups", err)
	}

	var groups []model.ApplicantGroup
	err := s.db.SelectContext(ctx, &groups,
		`SELECT `+applicantGroupColumns+` FROM applicant_groups WHERE company_id = $1
		 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, translate("failed to list applicant groups", err)
	}

	if len(groups) == 0 {
		return []model.ApplicantGroupDetail{}, total, nil
	}

	ids := make([]int64, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}

	var members []model.GroupMember
	err = s.db.SelectContext(ctx, &members,
		groupMemberSelect+` WHERE m.group_id = ANY($1) ORDER BY m.created_at ASC`, pq.Int64Array(ids))
	if err != nil {
		return nil, 0, translate("failed to list group members", err)
	}

	byGroup := make(map[int64][]model.GroupMember, len(groups))
	for _, m := range members {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], m)
	}

	details := make([]model.ApplicantGroupDetail, len(groups))
	for i, g := range groups {
		details[i] = model.ApplicantGroupDetail{ApplicantGroup: g, Members: byGroup[g.ID]}
		if details[i].Members == nil {
			details[i].Members = []model.GroupMember{}
		}
	}
	return details, total, nil
}

// AddGroupMembers adds the applications that belong to jobs of companyID and
// recomputes the group's applicant count. It returns how many rows were new.
func (s *Storage) AddGroupMembers(ctx context.Context, groupID, companyID int64, applicationIDs []int64, at time.Time) (int, int, error) {
	var added, total int

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO applicant_group_members (group_id, application_id, created_at)
			SELECT $1, a.id, $2
			FROM applications a
			JOIN jobs j ON j.id = a.job_id
			WHERE a.id = ANY($3) AND j.company_id = $4
			ON CONFLICT (group_id, application_id) DO NOTHING
		`, groupID, at, pq.Int64Array(applicationIDs), companyID)
		if err != nil {
			return translate("failed to add group members", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return translate("failed to read insert result", err)
		}
		added = int(n)

		err = tx.GetContext(ctx, &total, `
			UPDATE applicant_groups
			SET total_applicants = (SELECT COUNT(*) FROM applicant_group_members WHERE group_id = $1),
				updated_at = $2
			WHERE id = $1
			RETURNING total_applicants
		`, groupID, at)
		return translate("failed to update applicant count", err)
	})

	return added, total, err
}

func (s *Storage) ListGroupMembers(ctx context.Context, groupID int64) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := s.db.SelectContext(ctx, &members, groupMemberSelect+` WHERE m.group_id = $1`, groupID); err != nil {
		return nil, translate("failed to list group members", err)
	}
	return members, nil
}

func (s *Storage) UpdateGroupMetadata(ctx context.Context, groupID int64, metadata []byte, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE applicant_groups SET metadata = $1, updated_at = $2 WHERE id = $3`, metadata, at, groupID)
	return translate("failed to update group metadata", err)
}
