// Package repotest provides in-memory repositories for service and handler
// tests. They honour the same contracts as the Postgres repositories:
// lookups return (nil, nil) on a miss and unique keys fail with
// repository.DuplicateError.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store holds every table. Fail, when set, is returned by the operation
// named by its key (for example "notification.create").
type Store struct {
	mu sync.Mutex

	users         map[uuid.UUID]*entity.User
	profiles      map[uuid.UUID]*entity.ArtisanProfile
	skills        []entity.Skill
	artisanSkills map[uuid.UUID][]uuid.UUID
	jobs          map[uuid.UUID]*entity.Job
	jobSkills     map[uuid.UUID][]uuid.UUID
	applications  map[uuid.UUID]*entity.JobApplication
	reviews       map[uuid.UUID]*entity.Review
	notifications map[uuid.UUID]*entity.Notification

	Fail map[string]error
}

// NewStore seeds the skill catalogue with names.
func NewStore(skillNames ...string) *Store {
	s := &Store{
		users:         map[uuid.UUID]*entity.User{},
		profiles:      map[uuid.UUID]*entity.ArtisanProfile{},
		artisanSkills: map[uuid.UUID][]uuid.UUID{},
		jobs:          map[uuid.UUID]*entity.Job{},
		jobSkills:     map[uuid.UUID][]uuid.UUID{},
		applications:  map[uuid.UUID]*entity.JobApplication{},
		reviews:       map[uuid.UUID]*entity.Review{},
		notifications: map[uuid.UUID]*entity.Notification{},
		Fail:          map[string]error{},
	}
	for _, name := range skillNames {
		s.skills = append(s.skills, entity.Skill{ID: uuid.New(), Name: name})
	}
	return s
}

// Repository returns the aggregate backed by s.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:         userRepo{s},
		Skill:        skillRepo{s},
		Artisan:      artisanRepo{s},
		Job:          jobRepo{s},
		Application:  applicationRepo{s},
		Review:       reviewRepo{s},
		Notification: notificationRepo{s},
	}
}

// Notifications returns a copy of everything stored for userID.
func (s *Store) Notifications(userID uuid.UUID) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out
}

// SetJobStatus forces a job into status, bypassing service rules.
func (s *Store) SetJobStatus(id uuid.UUID, status entity.JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = status
	}
}

func (s *Store) fail(op string) error {
	return s.Fail[op]
}

func (s *Store) skillNames(ids []uuid.UUID) []string {
	var names []string
	for _, id := range ids {
		for _, skill := range s.skills {
			if skill.ID == id {
				names = append(names, skill.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *entity.User, profile *entity.ArtisanProfile, skillIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("user.create"); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return &repository.DuplicateError{Constraint: "users_email_key"}
		}
		if u.PhoneNumber == user.PhoneNumber {
			return &repository.DuplicateError{Constraint: "users_phone_number_key"}
		}
	}

	stored := *user
	r.s.users[user.ID] = &stored
	if profile != nil {
		p := *profile
		r.s.profiles[user.ID] = &p
		r.s.artisanSkills[user.ID] = slices.Clone(skillIDs)
	}
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("user.find"); err != nil {
		return nil, err
	}
	if u, ok := r.s.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("user.find"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r userRepo) FindByEmailOrPhone(_ context.Context, email, phone string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("user.find"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email || u.PhoneNumber == phone {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r userRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("update user %s: %w", user.ID, pgx.ErrNoRows)
	}
	for id, u := range r.s.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return &repository.DuplicateError{Constraint: "users_email_key"}
		}
		if u.PhoneNumber == user.PhoneNumber {
			return &repository.DuplicateError{Constraint: "users_phone_number_key"}
		}
	}

	current.FullName = user.FullName
	current.Email = user.Email
	current.PhoneNumber = user.PhoneNumber
	current.Location = user.Location
	current.UpdatedAt = user.UpdatedAt
	return nil
}

type skillRepo struct{ s *Store }

func (r skillRepo) List(_ context.Context) ([]entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.skills), nil
}

func (r skillRepo) FindByNames(_ context.Context, names []string) ([]entity.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("skill.find"); err != nil {
		return nil, err
	}
	var out []entity.Skill
	for _, skill := range r.s.skills {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(name), skill.Name) {
				out = append(out, skill)
				break
			}
		}
	}
	return out, nil
}

type artisanRepo struct{ s *Store }

func (r artisanRepo) artisan(id uuid.UUID) *entity.Artisan {
	u, ok := r.s.users[id]
	p, hasProfile := r.s.profiles[id]
	if !ok || !hasProfile || u.Role != entity.RoleArtisan {
		return nil
	}
	return &entity.Artisan{
		User:    *u,
		Profile: *p,
		Skills:  r.s.skillNames(r.s.artisanSkills[id]),
	}
}

func (r artisanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Artisan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.artisan(id), nil
}

func (r artisanRepo) filtered(filter entity.ArtisanFilter) []*entity.Artisan {
	var out []*entity.Artisan
	for id := range r.s.profiles {
		a := r.artisan(id)
		if a == nil {
			continue
		}
		if filter.Available != nil && a.Profile.IsAvailable != *filter.Available {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(a.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.Skill != "" && !slices.ContainsFunc(a.Skills, func(name string) bool {
			return strings.EqualFold(name, filter.Skill)
		}) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r artisanRepo) List(_ context.Context, filter entity.ArtisanFilter, limit, offset int) ([]*entity.Artisan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(filter), limit, offset), nil
}

func (r artisanRepo) Count(_ context.Context, filter entity.ArtisanFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r artisanRepo) UpsertProfile(_ context.Context, profile *entity.ArtisanProfile, skillIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := *profile
	r.s.profiles[profile.UserID] = &p
	if skillIDs != nil {
		r.s.artisanSkills[profile.UserID] = slices.Clone(skillIDs)
	}
	return nil
}

type jobRepo struct{ s *Store }

func (r jobRepo) load(id uuid.UUID) *entity.Job {
	job, ok := r.s.jobs[id]
	if !ok {
		return nil
	}
	out := *job
	out.RequiredSkills = r.s.skillNames(r.s.jobSkills[id])
	return &out
}

func (r jobRepo) Create(_ context.Context, job *entity.Job, skillIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *job
	r.s.jobs[job.ID] = &stored
	r.s.jobSkills[job.ID] = slices.Clone(skillIDs)
	return nil
}

func (r jobRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.load(id), nil
}

func (r jobRepo) filtered(filter entity.JobFilter) []*entity.Job {
	var out []*entity.Job
	for id, job := range r.s.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.ClientID != nil && job.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, r.load(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r jobRepo) List(_ context.Context, filter entity.JobFilter, limit, offset int) ([]*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.filtered(filter), limit, offset), nil
}

func (r jobRepo) Count(_ context.Context, filter entity.JobFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r jobRepo) Update(_ context.Context, job *entity.Job, expected entity.JobStatus, skillIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.jobs[job.ID]
	if !ok || current.Status != expected {
		return fmt.Errorf("update job %s: %w", job.ID, repository.ErrStale)
	}
	stored := *job
	stored.RequiredSkills = nil
	r.s.jobs[job.ID] = &stored
	r.s.jobSkills[job.ID] = slices.Clone(skillIDs)
	return nil
}

func (r jobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.JobStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job, ok := r.s.jobs[id]
	if !ok {
		return fmt.Errorf("update job %s status: %w", id, pgx.ErrNoRows)
	}
	job.Status = status
	job.UpdatedAt = time.Now()
	return nil
}

func (r jobRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return fmt.Errorf("delete job %s: %w", id, pgx.ErrNoRows)
	}
	delete(r.s.jobs, id)
	delete(r.s.jobSkills, id)
	for appID, a := range r.s.applications {
		if a.JobID == id {
			delete(r.s.applications, appID)
		}
	}
	return nil
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, application *entity.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.applications {
		if a.JobID == application.JobID && a.ArtisanID == application.ArtisanID {
			return &repository.DuplicateError{Constraint: "job_applications_job_artisan_key"}
		}
	}
	stored := *application
	r.s.applications[application.ID] = &stored
	return nil
}

func (r applicationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a, ok := r.s.applications[id]; ok {
		out := *a
		return &out, nil
	}
	return nil, nil
}

func (r applicationRepo) where(match func(*entity.JobApplication) bool) []*entity.JobApplication {
	var out []*entity.JobApplication
	for _, a := range r.s.applications {
		if match(a) {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r applicationRepo) FindByJobID(_ context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.where(func(a *entity.JobApplication) bool { return a.JobID == jobID }), nil
}

func (r applicationRepo) FindByArtisanID(_ context.Context, artisanID uuid.UUID, limit, offset int) ([]*entity.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.where(func(a *entity.JobApplication) bool { return a.ArtisanID == artisanID }), limit, offset), nil
}

func (r applicationRepo) CountByArtisanID(_ context.Context, artisanID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.where(func(a *entity.JobApplication) bool { return a.ArtisanID == artisanID }))), nil
}

func (r applicationRepo) Accept(_ context.Context, jobID, applicationID, artisanID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	application, ok := r.s.applications[applicationID]
	if !ok || application.JobID != jobID || application.Status != entity.ApplicationPending {
		return nil, fmt.Errorf("accept application %s: %w", applicationID, repository.ErrStale)
	}
	job, ok := r.s.jobs[jobID]
	if !ok || job.Status != entity.JobOpen {
		return nil, fmt.Errorf("accept application %s: %w", applicationID, repository.ErrStale)
	}

	application.Status = entity.ApplicationAccepted
	job.Status = entity.JobAssigned
	job.AssignedArtisanID = &artisanID

	var rejected []uuid.UUID
	for id, a := range r.s.applications {
		if a.JobID == jobID && id != applicationID && a.Status == entity.ApplicationPending {
			a.Status = entity.ApplicationRejected
			rejected = append(rejected, a.ArtisanID)
		}
	}
	return rejected, nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.JobID == review.JobID {
			return &repository.DuplicateError{Constraint: "job_reviews_job_id_key"}
		}
	}
	stored := *review
	r.s.reviews[review.ID] = &stored

	if profile, ok := r.s.profiles[review.ArtisanID]; ok {
		var sum, count int
		for _, rv := range r.s.reviews {
			if rv.ArtisanID == review.ArtisanID {
				sum += rv.Rating
				count++
			}
		}
		profile.TotalReviews = count
		profile.AverageRating = float64(sum) / float64(count)
	}
	return nil
}

func (r reviewRepo) FindByJobID(_ context.Context, jobID uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, review := range r.s.reviews {
		if review.JobID == jobID {
			out := *review
			return &out, nil
		}
	}
	return nil, nil
}

func (r reviewRepo) byArtisan(artisanID uuid.UUID) []*entity.Review {
	var out []*entity.Review
	for _, review := range r.s.reviews {
		if review.ArtisanID == artisanID {
			copied := *review
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r reviewRepo) FindByArtisanID(_ context.Context, artisanID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.byArtisan(artisanID), limit, offset), nil
}

func (r reviewRepo) CountByArtisanID(_ context.Context, artisanID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byArtisan(artisanID))), nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fail("notification.create"); err != nil {
		return err
	}
	stored := *notification
	r.s.notifications[notification.ID] = &stored
	return nil
}

func (r notificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if n, ok := r.s.notifications[id]; ok {
		out := *n
		return &out, nil
	}
	return nil, nil
}

func (r notificationRepo) forUser(userID uuid.UUID, isRead *bool) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range r.s.notifications {
		if n.UserID != userID || (isRead != nil && n.IsRead != *isRead) {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r notificationRepo) FindByUserID(_ context.Context, userID uuid.UUID, isRead *bool, limit, offset int) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.forUser(userID, isRead), limit, offset), nil
}

func (r notificationRepo) CountByUserID(_ context.Context, userID uuid.UUID, isRead *bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.forUser(userID, isRead))), nil
}

func (r notificationRepo) SetRead(_ context.Context, id uuid.UUID, isRead bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return fmt.Errorf("mark notification %s: %w", id, pgx.ErrNoRows)
	}
	n.IsRead = isRead
	return nil
}

func (r notificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

// ErrUnavailable is a convenient value for Store.Fail.
var ErrUnavailable = errors.New("repotest: store unavailable")
