package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/auth"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
)

var errStoreDown = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type bookmarkKey struct {
	userID   int64
	kind     domain.TargetType
	targetID int64
}

// memStore is an in-memory stand-in for the PostgreSQL storage
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*model.User
	companies map[int64]*model.Company
	jobs      map[int64]*model.Job
	apps      map[int64]*model.Application
	bookmarks map[bookmarkKey]*model.Bookmark
	history   map[int64][]model.ApplicationStatusHistory

	// mutations counts every write that reached the store
	mutations int
	fail      error
}

func newMemStore() *memStore {
	return &memStore{
		nextID:    100,
		users:     map[int64]*model.User{},
		companies: map[int64]*model.Company{},
		jobs:      map[int64]*model.Job{},
		apps:      map[int64]*model.Application{},
		bookmarks: map[bookmarkKey]*model.Bookmark{},
		history:   map[int64][]model.ApplicationStatusHistory{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(id int64, email string) *model.User {
	u := &model.User{ID: id, Email: email, Name: "user"}
	m.users[id] = u
	return u
}

func (m *memStore) addCompany(id, ownerID int64, name string) *model.Company {
	c := &model.Company{ID: id, OwnerID: ownerID, Name: name, Location: "서울"}
	m.companies[id] = c
	return c
}

func (m *memStore) addJob(id, companyID int64, deadline time.Time) *model.Job {
	j := &model.Job{ID: id, CompanyID: companyID, Title: "Backend Engineer", Status: domain.JobStatusActive, Deadline: &deadline}
	m.jobs[id] = j
	return j
}

func (m *memStore) addApplication(id, userID, jobID int64, status domain.ApplicationStatus) *model.Application {
	a := &model.Application{ID: id, UserID: userID, JobID: jobID, Status: string(status), CoverLetter: "original"}
	m.apps[id] = a
	return a
}

// users

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.NewDuplicate("email already exists")
		}
	}
	m.mutations++
	user.ID = m.id()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (m *memStore) UserExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

// companies

func (m *memStore) CreateCompany(_ context.Context, company *model.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	company.ID = m.id()
	cp := *company
	m.companies[company.ID] = &cp
	return nil
}

func (m *memStore) GetCompanyByID(_ context.Context, id int64) (*model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) CompanyNameTaken(_ context.Context, name string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.companies {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CompanyExists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.companies[id]
	return ok, nil
}

func (m *memStore) ListCompanies(_ context.Context, filter model.CompanyFilter) ([]model.CompanyWithStats, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CompanyWithStats
	for _, c := range m.companies {
		out = append(out, model.CompanyWithStats{Company: *c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *memStore) UpdateCompany(_ context.Context, company *model.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	cp := *company
	m.companies[company.ID] = &cp
	return nil
}

func (m *memStore) DeleteCompany(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	delete(m.companies, id)
	return nil
}

func (m *memStore) ListJobsByCompany(_ context.Context, companyID int64) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Job
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	return out, nil
}

// applications

func (m *memStore) FindActiveApplication(_ context.Context, userID, jobID int64) (*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, a := range m.apps {
		if a.UserID == userID && a.JobID == jobID && a.Status != string(domain.ApplicationWithdrawn) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (m *memStore) GetOpenJob(_ context.Context, id int64, now time.Time) (*model.JobListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok || j.Status != domain.JobStatusActive || j.Deadline == nil || !j.Deadline.After(now) {
		return nil, domain.ErrRecordNotFound
	}
	item := &model.JobListItem{Job: *j}
	if c, ok := m.companies[j.CompanyID]; ok {
		item.CompanyName = c.Name
		item.CompanyOwnerID = c.OwnerID
	}
	return item, nil
}

func (m *memStore) CreateApplication(_ context.Context, app *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.UserID == app.UserID && a.JobID == app.JobID && a.Status != string(domain.ApplicationWithdrawn) {
			return domain.NewDuplicate("you have already applied to this job").With("jobId", app.JobID)
		}
	}
	m.mutations++
	app.ID = m.id()
	cp := *app
	m.apps[app.ID] = &cp
	return nil
}

func (m *memStore) detail(a *model.Application) *model.ApplicationDetail {
	d := &model.ApplicationDetail{Application: *a}
	if j, ok := m.jobs[a.JobID]; ok {
		d.JobTitle = j.Title
		if c, ok := m.companies[j.CompanyID]; ok {
			d.CompanyID = c.ID
			d.CompanyName = c.Name
			d.CompanyOwnerID = c.OwnerID
		}
	}
	return d
}

func (m *memStore) GetApplicationDetail(_ context.Context, id int64) (*model.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return m.detail(a), nil
}

func (m *memStore) GetUserApplication(_ context.Context, id, userID int64) (*model.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrRecordNotFound
	}
	return m.detail(a), nil
}

func (m *memStore) ListUserApplications(_ context.Context, filter model.ApplicationFilter) ([]model.ApplicationDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ApplicationDetail
	for _, a := range m.apps {
		if a.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *m.detail(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := len(out)
	start := min(filter.Offset(), total)
	end := min(start+filter.Limit, total)
	return out[start:end], total, nil
}

func (m *memStore) UpdateApplicationStatus(_ context.Context, id int64, status domain.ApplicationStatus, at time.Time) (domain.ApplicationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return "", domain.ErrRecordNotFound
	}
	m.mutations++
	prev := domain.ApplicationStatus(a.Status)
	a.Status = string(status)
	a.LastStatusUpdateAt = &at
	a.UpdatedAt = at
	return prev, nil
}

func (m *memStore) WithdrawApplication(_ context.Context, id, userID int64, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok || a.UserID != userID || !domain.ApplicationStatus(a.Status).IsEditable() {
		return false, nil
	}
	m.mutations++
	a.Status = string(domain.ApplicationWithdrawn)
	a.LastStatusUpdateAt = &at
	a.UpdatedAt = at
	return true, nil
}

func (m *memStore) UpdateCoverLetter(_ context.Context, id, userID int64, coverLetter string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok || a.UserID != userID || !domain.ApplicationStatus(a.Status).IsEditable() {
		return false, nil
	}
	m.mutations++
	a.CoverLetter = coverLetter
	a.UpdatedAt = at
	return true, nil
}

func (m *memStore) ListStatusHistory(_ context.Context, applicationID int64) ([]model.ApplicationStatusHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[applicationID], nil
}

// bookmarks

func (m *memStore) BookmarkTargetExists(_ context.Context, target domain.BookmarkTarget) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch t := target.(type) {
	case domain.JobTarget:
		_, ok := m.jobs[t.ID]
		return ok, nil
	case domain.CompanyTarget:
		_, ok := m.companies[t.ID]
		return ok, nil
	}
	return false, nil
}

func (m *memStore) ToggleBookmark(_ context.Context, userID int64, target domain.BookmarkTarget, at time.Time) (*model.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	key := bookmarkKey{userID: userID, kind: target.Type(), targetID: target.TargetID()}
	if _, ok := m.bookmarks[key]; ok {
		delete(m.bookmarks, key)
		return nil, nil
	}
	bm := &model.Bookmark{
		ID:         m.id(),
		UserID:     userID,
		TargetType: string(target.Type()),
		TargetID:   target.TargetID(),
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	m.bookmarks[key] = bm
	cp := *bm
	return &cp, nil
}

func (m *memStore) BookmarkExists(_ context.Context, userID int64, target domain.BookmarkTarget) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.bookmarks[bookmarkKey{userID: userID, kind: target.Type(), targetID: target.TargetID()}]
	return ok, nil
}

func (m *memStore) ListBookmarks(_ context.Context, filter model.BookmarkFilter) ([]model.BookmarkItem, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BookmarkItem
	for key, bm := range m.bookmarks {
		if key.userID != filter.UserID {
			continue
		}
		if filter.Type != "" && string(key.kind) != filter.Type {
			continue
		}
		out = append(out, model.BookmarkItem{Bookmark: *bm})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, len(out), nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ApplicationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.ApplicationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type memCache struct {
	entries     map[int64]*model.CompanyDetail
	invalidated []int64
	err         error
}

func newMemCache() *memCache {
	return &memCache{entries: map[int64]*model.CompanyDetail{}}
}

func (c *memCache) Get(_ context.Context, id int64) (*model.CompanyDetail, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.entries[id], nil
}

func (c *memCache) Set(_ context.Context, detail *model.CompanyDetail) error {
	if c.err != nil {
		return c.err
	}
	c.entries[detail.ID] = detail
	return nil
}

func (c *memCache) Invalidate(_ context.Context, id int64) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
	return c.err
}

type recordedSearch struct {
	userID  int64
	keyword string
	filters map[string]any
}

type searchRecorder struct {
	searches []recordedSearch
}

func (r *searchRecorder) Record(_ context.Context, userID int64, keyword string, filters map[string]any) {
	r.searches = append(r.searches, recordedSearch{userID: userID, keyword: keyword, filters: filters})
}

type stubTokens struct {
	refreshUser int64
	refreshErr  error
}

func (s *stubTokens) Issue(userID int64) (*auth.TokenPair, error) {
	return &auth.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: time.Hour}, nil
}

func (s *stubTokens) ParseRefresh(string) (int64, error) {
	return s.refreshUser, s.refreshErr
}
