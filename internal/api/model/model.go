package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Tables are queried with sqlx through the db tags. The gorm tags only
// declare the schema for AutoMigrate; relation fields carry db:"-".

type User struct {
	ID           int64          `db:"id" json:"id" gorm:"primaryKey"`
	Email        string         `db:"email" json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string         `db:"password_hash" json:"-" gorm:"size:255;not null"`
	Name         string         `db:"name" json:"name" gorm:"size:100;not null"`
	Phone        *string        `db:"phone" json:"phone" gorm:"size:30"`
	Career       int            `db:"career" json:"career" gorm:"not null;default:0"`
	SkillSet     pq.StringArray `db:"skill_set" json:"skillSet" gorm:"type:text[]"`
	LastLoginAt  *time.Time     `db:"last_login_at" json:"lastLoginAt"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt" gorm:"not null"`
}

type Company struct {
	ID            int64     `db:"id" json:"id" gorm:"primaryKey"`
	Name          string    `db:"name" json:"name" gorm:"size:200;not null;uniqueIndex"`
	Industry      *string   `db:"industry" json:"industry" gorm:"size:100"`
	Size          *string   `db:"size" json:"size" gorm:"size:50"`
	Location      string    `db:"location" json:"location" gorm:"size:20;not null;index"`
	EmployeeCount *int      `db:"employee_count" json:"employeeCount"`
	FoundedYear   *int      `db:"founded_year" json:"foundedYear"`
	CompanyURL    *string   `db:"company_url" json:"companyUrl" gorm:"column:company_url;size:500"`
	OwnerID       int64     `db:"owner_id" json:"ownerId" gorm:"not null;index"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt" gorm:"not null"`

	Owner *User `db:"-" json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

type Job struct {
	ID             int64          `db:"id" json:"id" gorm:"primaryKey"`
	CompanyID      int64          `db:"company_id" json:"companyId" gorm:"not null;index"`
	Title          string         `db:"title" json:"title" gorm:"size:200;not null"`
	Description    *string        `db:"description" json:"description" gorm:"type:text"`
	RequiredSkills pq.StringArray `db:"required_skills" json:"requiredSkills" gorm:"type:text[]"`
	RequiredCareer int            `db:"required_career" json:"requiredCareer" gorm:"not null;default:0"`
	Salary         *Salary        `db:"salary" json:"salary" gorm:"type:jsonb"`
	Location       *string        `db:"location" json:"location" gorm:"size:100"`
	JobType        string         `db:"job_type" json:"jobType" gorm:"size:20;not null;default:FULL_TIME"`
	Deadline       *time.Time     `db:"deadline" json:"deadline"`
	Status         string         `db:"status" json:"status" gorm:"size:20;not null;default:ACTIVE;index"`
	ViewCount      int            `db:"view_count" json:"viewCount" gorm:"not null;default:0"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt" gorm:"not null"`

	Company *Company `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type Application struct {
	ID                 int64      `db:"id" json:"id" gorm:"primaryKey"`
	UserID             int64      `db:"user_id" json:"userId" gorm:"not null;index;uniqueIndex:idx_applications_active,priority:1,where:status <> 'WITHDRAWN'"`
	JobID              int64      `db:"job_id" json:"jobId" gorm:"not null;index;uniqueIndex:idx_applications_active,priority:2,where:status <> 'WITHDRAWN'"`
	Status             string     `db:"status" json:"status" gorm:"size:30;not null;default:PENDING;index"`
	CoverLetter        string     `db:"cover_letter" json:"coverLetter" gorm:"type:text;not null;default:''"`
	AppliedAt          time.Time  `db:"applied_at" json:"appliedAt" gorm:"not null;index"`
	LastStatusUpdateAt *time.Time `db:"last_status_update_at" json:"lastStatusUpdateAt"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt" gorm:"not null"`

	User *User `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Job  *Job  `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type Bookmark struct {
	ID         int64     `db:"id" json:"id" gorm:"primaryKey"`
	UserID     int64     `db:"user_id" json:"userId" gorm:"not null;uniqueIndex:idx_bookmarks_target,priority:1"`
	TargetType string    `db:"target_type" json:"targetType" gorm:"size:10;not null;uniqueIndex:idx_bookmarks_target,priority:2"`
	TargetID   int64     `db:"target_id" json:"targetId" gorm:"not null;uniqueIndex:idx_bookmarks_target,priority:3"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt" gorm:"not null"`

	User *User `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type SearchHistory struct {
	ID         int64          `db:"id" json:"id" gorm:"primaryKey"`
	UserID     int64          `db:"user_id" json:"userId" gorm:"not null;index"`
	Keyword    string         `db:"keyword" json:"keyword" gorm:"size:255;not null"`
	Filters    types.JSONText `db:"filters" json:"filters" gorm:"type:jsonb;not null;default:'{}'"`
	SearchedAt time.Time      `db:"searched_at" json:"searchedAt" gorm:"not null;index"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt" gorm:"not null"`

	User *User `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type CompanyReview struct {
	ID                int64     `db:"id" json:"id" gorm:"primaryKey"`
	UserID            int64     `db:"user_id" json:"userId" gorm:"not null;uniqueIndex:idx_company_reviews_author,priority:1"`
	CompanyID         int64     `db:"company_id" json:"companyId" gorm:"not null;index;uniqueIndex:idx_company_reviews_author,priority:2"`
	Rating            int       `db:"rating" json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Title             string    `db:"title" json:"title" gorm:"size:200;not null"`
	Content           string    `db:"content" json:"content" gorm:"type:text;not null"`
	Pros              *string   `db:"pros" json:"pros" gorm:"type:text"`
	Cons              *string   `db:"cons" json:"cons" gorm:"type:text"`
	Position          *string   `db:"position" json:"position" gorm:"size:100"`
	WorkPeriod        *string   `db:"work_period" json:"workPeriod" gorm:"size:50"`
	IsCurrentEmployee bool      `db:"is_current_employee" json:"isCurrentEmployee" gorm:"not null;default:false"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt" gorm:"not null"`

	User    *User    `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Company *Company `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type InterviewReview struct {
	ID            int64      `db:"id" json:"id" gorm:"primaryKey"`
	UserID        int64      `db:"user_id" json:"userId" gorm:"not null;index"`
	CompanyID     int64      `db:"company_id" json:"companyId" gorm:"not null;index"`
	CompanyName   string     `db:"company_name" json:"companyName" gorm:"size:200;not null"`
	Difficulty    int        `db:"difficulty" json:"difficulty" gorm:"not null;check:difficulty BETWEEN 1 AND 5"`
	Result        string     `db:"result" json:"result" gorm:"size:10;not null"`
	Position      *string    `db:"position" json:"position" gorm:"size:100;index"`
	InterviewDate *time.Time `db:"interview_date" json:"interviewDate"`
	Process       string     `db:"process" json:"process" gorm:"type:text;not null"`
	Questions     *string    `db:"questions" json:"questions" gorm:"type:text"`
	Content       *string    `db:"content" json:"content" gorm:"type:text"`
	Tips          *string    `db:"tips" json:"tips" gorm:"type:text"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt" gorm:"not null"`

	User    *User    `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Company *Company `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type Interview struct {
	ID            int64     `db:"id" json:"id" gorm:"primaryKey"`
	ApplicationID int64     `db:"application_id" json:"applicationId" gorm:"not null;index"`
	CompanyID     int64     `db:"company_id" json:"companyId" gorm:"not null;index"`
	UserID        int64     `db:"user_id" json:"userId" gorm:"not null;index"`
	ScheduleDate  time.Time `db:"schedule_date" json:"scheduleDate" gorm:"not null;index"`
	Type          string    `db:"type" json:"type" gorm:"size:10;not null;default:OFFLINE"`
	Location      *string   `db:"location" json:"location" gorm:"size:255"`
	InterviewLink *string   `db:"interview_link" json:"interviewLink" gorm:"size:500"`
	Status        string    `db:"status" json:"status" gorm:"size:20;not null;default:SCHEDULED"`
	Notes         *string   `db:"notes" json:"notes" gorm:"type:text"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt" gorm:"not null"`

	Application *Application `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Company     *Company     `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
	User        *User        `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type ApplicantGroup struct {
	ID              int64          `db:"id" json:"id" gorm:"primaryKey"`
	CompanyID       int64          `db:"company_id" json:"companyId" gorm:"not null;index"`
	Name            string         `db:"name" json:"name" gorm:"size:100;not null"`
	Description     *string        `db:"description" json:"description" gorm:"type:text"`
	Status          string         `db:"status" json:"status" gorm:"size:10;not null;default:ACTIVE"`
	TotalApplicants int            `db:"total_applicants" json:"totalApplicants" gorm:"not null;default:0"`
	Metadata        types.JSONText `db:"metadata" json:"metadata" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt" gorm:"not null"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt" gorm:"not null"`

	Company *Company `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type ApplicantGroupMember struct {
	GroupID       int64     `db:"group_id" json:"groupId" gorm:"primaryKey"`
	ApplicationID int64     `db:"application_id" json:"applicationId" gorm:"primaryKey"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt" gorm:"not null"`

	Group       *ApplicantGroup `db:"-" json:"-" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Application *Application    `db:"-" json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// ApplicationStatusHistory is written by the worker from application events
type ApplicationStatusHistory struct {
	ID             int64     `db:"id" json:"id" gorm:"primaryKey"`
	EventID        string    `db:"event_id" json:"eventId" gorm:"size:36;not null;uniqueIndex"`
	ApplicationID  int64     `db:"application_id" json:"applicationId" gorm:"not null;index"`
	UserID         int64     `db:"user_id" json:"userId" gorm:"not null"`
	JobID          int64     `db:"job_id" json:"jobId" gorm:"not null"`
	EventType      string    `db:"event_type" json:"eventType" gorm:"size:50;not null"`
	PreviousStatus *string   `db:"previous_status" json:"previousStatus" gorm:"size:30"`
	NewStatus      string    `db:"new_status" json:"newStatus" gorm:"size:30;not null"`
	ActorID        int64     `db:"actor_id" json:"actorId" gorm:"not null"`
	OccurredAt     time.Time `db:"occurred_at" json:"occurredAt" gorm:"not null;index"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt" gorm:"not null"`
}

// AllModels lists every table in dependency order for schema sync
func AllModels() []any {
	return []any{
		&User{},
		&Company{},
		&Job{},
		&Application{},
		&Bookmark{},
		&SearchHistory{},
		&CompanyReview{},
		&InterviewReview{},
		&Interview{},
		&ApplicantGroup{},
		&ApplicantGroupMember{},
		&ApplicationStatusHistory{},
	}
}
