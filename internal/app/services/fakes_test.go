package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/events"
)

// memStore backs every fake repository so joins (names, owners) resolve the
// way the SQL does
type memStore struct {
	mu     sync.Mutex
	nextID int64
	clock  time.Time

	users       map[int64]*models.User
	jobs        map[int64]*models.Job
	apps        map[int64]*models.Application
	events      map[int64]*models.Event
	regs        map[[2]int64]bool
	donations   []*models.Donation
	mentorships map[int64]*models.MentorshipRequest
	convByPair  map[[2]int64]int64
	convMembers map[int64][2]int64
	convCreated map[int64]time.Time
	messages    []*models.Message

	// donationErr, when set, is returned by the next donation insert
	donationErr error
}

func newMemStore() *memStore {
	return &memStore{
		clock:       time.Date(2025, 4, 23, 9, 0, 0, 0, time.UTC),
		users:       map[int64]*models.User{},
		jobs:        map[int64]*models.Job{},
		apps:        map[int64]*models.Application{},
		events:      map[int64]*models.Event{},
		regs:        map[[2]int64]bool{},
		mentorships: map[int64]*models.MentorshipRequest{},
		convByPair:  map[[2]int64]int64{},
		convMembers: map[int64][2]int64{},
		convCreated: map[int64]time.Time{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// now advances a fake clock so ordering by time is deterministic
func (s *memStore) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// ---- users

type fakeUserRepo struct{ s *memStore }

var _ repositories.IUserRepository = fakeUserRepo{}

func (r fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r fakeUserRepo) UpdateProfile(_ context.Context, id int64, p models.ProfileUpdate) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	set := func(dst **string, v *string) {
		if v != nil {
			c := *v
			*dst = &c
		}
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	set(&u.Phone, p.Phone)
	set(&u.Location, p.Location)
	set(&u.Bio, p.Bio)
	set(&u.LinkedIn, p.LinkedIn)
	set(&u.Avatar, p.Avatar)
	set(&u.CurrentOrganization, p.CurrentOrganization)
	set(&u.CurrentTitle, p.CurrentTitle)
	set(&u.Department, p.Department)
	set(&u.Batch, p.Batch)
	if p.GraduationYear != nil {
		y := *p.GraduationYear
		u.GraduationYear = &y
	}
	cp := *u
	return &cp, nil
}

func (r fakeUserRepo) List(_ context.Context, f repositories.UserFilter) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.User{}
	for _, u := range r.s.users {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.Approved != nil && u.IsApproved != *f.Approved {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeUserRepo) ApproveAlumni(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Role != models.RoleAlumni {
		return repositories.ErrNotFound
	}
	u.IsApproved = true
	return nil
}

func (r fakeUserRepo) DeleteUnapprovedAlumni(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Role != models.RoleAlumni || u.IsApproved {
		return repositories.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ---- jobs

type fakeJobRepo struct{ s *memStore }

var _ repositories.IJobRepository = fakeJobRepo{}

func (r fakeJobRepo) Create(_ context.Context, j *models.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j.ID = r.s.id()
	j.CreatedAt = r.s.now()
	cp := *j
	r.s.jobs[j.ID] = &cp
	return nil
}

func (r fakeJobRepo) get(id int64) (*models.Job, error) {
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *j
	for _, a := range r.s.apps {
		if a.JobID == id {
			cp.Applicants++
		}
	}
	return &cp, nil
}

func (r fakeJobRepo) GetByID(_ context.Context, id int64) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id)
}

func (r fakeJobRepo) GetForUpdate(ctx context.Context, id int64) (*models.Job, error) {
	return r.GetByID(ctx, id)
}

func (r fakeJobRepo) List(_ context.Context) ([]*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Job{}
	for id := range r.s.jobs {
		j, _ := r.get(id)
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r fakeJobRepo) Update(_ context.Context, id int64, u models.JobUpdate) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Company != nil {
		j.Company = *u.Company
	}
	if u.Location != nil {
		j.Location = u.Location
	}
	if u.Type != nil {
		j.Type = u.Type
	}
	if u.Description != nil {
		j.Description = u.Description
	}
	if u.Requirements != nil {
		j.Requirements = *u.Requirements
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	return r.get(id)
}

func (r fakeJobRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.jobs, id)
	for aid, a := range r.s.apps {
		if a.JobID == id {
			delete(r.s.apps, aid)
		}
	}
	return nil
}

// ---- applications

type fakeApplicationRepo struct{ s *memStore }

var _ repositories.IApplicationRepository = fakeApplicationRepo{}

func (r fakeApplicationRepo) Create(_ context.Context, a *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.apps {
		if existing.JobID == a.JobID && existing.StudentID == a.StudentID {
			return repositories.ErrDuplicate
		}
	}
	a.ID = r.s.id()
	a.CreatedAt = r.s.now()
	cp := *a
	r.s.apps[a.ID] = &cp
	return nil
}

func (r fakeApplicationRepo) get(id int64) (*models.Application, error) {
	a, ok := r.s.apps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	if u, ok := r.s.users[a.StudentID]; ok {
		cp.StudentName = u.Name
	}
	if j, ok := r.s.jobs[a.JobID]; ok {
		cp.JobTitle = j.Title
		cp.Company = j.Company
	}
	return &cp, nil
}

func (r fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id)
}

func (r fakeApplicationRepo) List(_ context.Context, scope auth.ListScope, jobID int64) ([]*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Application{}
	if scope.Empty() {
		return out, nil
	}
	for id, a := range r.s.apps {
		if jobID != 0 && a.JobID != jobID {
			continue
		}
		if !scope.All {
			if scope.StudentID != 0 && a.StudentID != scope.StudentID {
				continue
			}
			if scope.JobOwnerID != 0 {
				j, ok := r.s.jobs[a.JobID]
				if !ok || j.PostedByID != scope.JobOwnerID {
					continue
				}
			}
		}
		app, _ := r.get(id)
		out = append(out, app)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r fakeApplicationRepo) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	a.Status = status
	return r.get(id)
}

// ---- events

type fakeEventRepo struct{ s *memStore }

var _ repositories.IEventRepository = fakeEventRepo{}

func (r fakeEventRepo) Create(_ context.Context, e *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.id()
	e.CreatedAt = r.s.now()
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r fakeEventRepo) count(id int64) int {
	n := 0
	for k := range r.s.regs {
		if k[0] == id {
			n++
		}
	}
	return n
}

func (r fakeEventRepo) get(id int64) (*models.Event, error) {
	e, ok := r.s.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	cp.RegisteredCount = r.count(id)
	return &cp, nil
}

func (r fakeEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id)
}

func (r fakeEventRepo) GetForUpdate(ctx context.Context, id int64) (*models.Event, error) {
	return r.GetByID(ctx, id)
}

func (r fakeEventRepo) List(_ context.Context) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Event{}
	for id := range r.s.events {
		e, _ := r.get(id)
		out = append(out, e)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Date.Before(out[k].Date) })
	return out, nil
}

func (r fakeEventRepo) Update(_ context.Context, id int64, u models.EventUpdate) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.MaxCapacity != nil {
		e.MaxCapacity = u.MaxCapacity
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	return r.get(id)
}

func (r fakeEventRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}

func (r fakeEventRepo) CountRegistrations(_ context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.count(id), nil
}

func (r fakeEventRepo) Register(_ context.Context, eventID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{eventID, userID}
	if r.s.regs[key] {
		return repositories.ErrDuplicate
	}
	r.s.regs[key] = true
	return nil
}

func (r fakeEventRepo) Unregister(_ context.Context, eventID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{eventID, userID}
	if !r.s.regs[key] {
		return repositories.ErrNotFound
	}
	delete(r.s.regs, key)
	return nil
}

// ---- donations

type fakeDonationRepo struct{ s *memStore }

var _ repositories.IDonationRepository = fakeDonationRepo{}

func (r fakeDonationRepo) Create(_ context.Context, d *models.Donation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.donationErr; err != nil {
		r.s.donationErr = nil
		return err
	}
	d.ID = r.s.id()
	d.CreatedAt = r.s.now()
	if u, ok := r.s.users[d.UserID]; ok {
		d.DonorName = u.Name
	}
	cp := *d
	r.s.donations = append(r.s.donations, &cp)
	return nil
}

func (r fakeDonationRepo) List(_ context.Context, scope auth.ListScope) ([]*models.Donation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Donation{}
	if scope.Empty() {
		return out, nil
	}
	for i := len(r.s.donations) - 1; i >= 0; i-- {
		d := r.s.donations[i]
		if !scope.All && d.UserID != scope.DonorID {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeDonationRepo) Stats(_ context.Context) (models.DonationStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var st models.DonationStats
	for _, d := range r.s.donations {
		st.TotalDonations++
		st.TotalAmount += d.Amount
	}
	return st, nil
}

// ---- mentorship

type fakeMentorshipRepo struct{ s *memStore }

var _ repositories.IMentorshipRepository = fakeMentorshipRepo{}

func (r fakeMentorshipRepo) Create(_ context.Context, m *models.MentorshipRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	m.CreatedAt = r.s.now()
	cp := *m
	r.s.mentorships[m.ID] = &cp
	return nil
}

func (r fakeMentorshipRepo) get(id int64) (*models.MentorshipRequest, error) {
	m, ok := r.s.mentorships[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r fakeMentorshipRepo) GetByID(_ context.Context, id int64) (*models.MentorshipRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id)
}

func (r fakeMentorshipRepo) GetForUpdate(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	return r.GetByID(ctx, id)
}

func (r fakeMentorshipRepo) List(_ context.Context, scope auth.ListScope) ([]*models.MentorshipRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.MentorshipRequest{}
	if scope.Empty() {
		return out, nil
	}
	for id, m := range r.s.mentorships {
		if !scope.All {
			if scope.MentorID != 0 && m.MentorID != scope.MentorID {
				continue
			}
			if scope.StudentID != 0 && m.StudentID != scope.StudentID {
				continue
			}
		}
		cp, _ := r.get(id)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r fakeMentorshipRepo) UpdateStatus(_ context.Context, id int64, status models.MentorshipStatus) (*models.MentorshipRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.mentorships[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	m.Status = status
	return r.get(id)
}

// ---- conversations

type fakeConversationRepo struct{ s *memStore }

var _ repositories.IConversationRepository = fakeConversationRepo{}

func (r fakeConversationRepo) GetOrCreate(_ context.Context, a, b int64) (int64, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	low, high := models.ConversationPair(a, b)
	key := [2]int64{low, high}
	if id, ok := r.s.convByPair[key]; ok {
		return id, false, nil
	}
	id := r.s.id()
	r.s.convByPair[key] = id
	r.s.convMembers[id] = key
	r.s.convCreated[id] = r.s.now()
	return id, true, nil
}

func (r fakeConversationRepo) member(convID, userID int64) bool {
	m, ok := r.s.convMembers[convID]
	return ok && (m[0] == userID || m[1] == userID)
}

func (r fakeConversationRepo) IsParticipant(_ context.Context, convID, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.member(convID, userID), nil
}

func (r fakeConversationRepo) OtherParticipant(_ context.Context, convID, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.member(convID, userID) {
		return 0, repositories.ErrNotFound
	}
	m := r.s.convMembers[convID]
	if m[0] == userID {
		return m[1], nil
	}
	return m[0], nil
}

func (r fakeConversationRepo) summary(convID, userID int64) *models.ConversationSummary {
	m := r.s.convMembers[convID]
	other := m[0]
	if other == userID {
		other = m[1]
	}
	s := &models.ConversationSummary{ID: convID, OtherUserID: other, CreatedAt: r.s.convCreated[convID]}
	if u, ok := r.s.users[other]; ok {
		s.OtherUserName = u.Name
		s.OtherUserRole = u.Role
		s.OtherUserAvatar = u.Avatar
	}
	for _, msg := range r.s.messages {
		if msg.ConversationID != convID {
			continue
		}
		content, at := msg.Content, msg.CreatedAt
		s.LastMessage, s.LastMessageTime = &content, &at
		if msg.SenderID != userID && !msg.IsRead {
			s.UnreadCount++
		}
	}
	return s
}

func (r fakeConversationRepo) ListForUser(_ context.Context, userID int64) ([]*models.ConversationSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.ConversationSummary{}
	for id := range r.s.convMembers {
		if r.member(id, userID) {
			out = append(out, r.summary(id, userID))
		}
	}
	activity := func(s *models.ConversationSummary) time.Time {
		if s.LastMessageTime != nil {
			return *s.LastMessageTime
		}
		return s.CreatedAt
	}
	sort.Slice(out, func(i, k int) bool { return activity(out[i]).After(activity(out[k])) })
	return out, nil
}

func (r fakeConversationRepo) GetSummary(_ context.Context, convID, userID int64) (*models.ConversationSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.member(convID, userID) {
		return nil, repositories.ErrNotFound
	}
	return r.summary(convID, userID), nil
}

func (r fakeConversationRepo) ListMessages(_ context.Context, convID int64) ([]*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Message{}
	for _, m := range r.s.messages {
		if m.ConversationID == convID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeConversationRepo) CreateMessage(_ context.Context, convID, senderID int64, content string) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.member(convID, senderID) {
		return nil, repositories.ErrNotFound
	}
	m := &models.Message{ID: r.s.id(), ConversationID: convID, SenderID: senderID, Content: content, CreatedAt: r.s.now()}
	if u, ok := r.s.users[senderID]; ok {
		m.SenderName = u.Name
	}
	r.s.messages = append(r.s.messages, m)
	cp := *m
	return &cp, nil
}

func (r fakeConversationRepo) MarkRead(ctx context.Context, convID, readerID int64) (int64, error) {
	if !inFakeTx(ctx) {
		return 0, errors.New("mark read outside a transaction")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m := r.s.convMembers[convID]; m[0] != readerID && m[1] != readerID {
		return 0, nil
	}
	var n int64
	for _, m := range r.s.messages {
		if m.ConversationID == convID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

// ---- collaborators

// fakeTx runs fn inline; the fakes are already serialized by memStore.mu.
// It marks ctx so fakes can assert they ran inside a transaction.
type fakeTx struct{}

type fakeTxKey struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(context.WithValue(ctx, fakeTxKey{}, true))
}

func inFakeTx(ctx context.Context) bool {
	v, _ := ctx.Value(fakeTxKey{}).(bool)
	return v
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type push struct {
	userID  int64
	payload any
}

type recordingNotifier struct {
	mu     sync.Mutex
	pushes []push
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID int64, v any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, push{userID: userID, payload: v})
	return nil
}

// env wires every service over one memStore
type env struct {
	store     *memStore
	publisher *recordingPublisher
	notifier  *recordingNotifier

	users       UserService
	auth        AuthService
	jobs        JobService
	apps        ApplicationService
	events      EventService
	donations   DonationService
	mentorships MentorshipService
	messages    MessageService
}

func newEnv() *env {
	s := newMemStore()
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}
	authz := auth.NewAuthorizationService()
	log := zerolog.Nop()

	users := fakeUserRepo{s}
	jobs := fakeJobRepo{s}
	return &env{
		store:       s,
		publisher:   pub,
		notifier:    notifier,
		users:       NewUserService(users, authz, pub, log),
		auth:        NewAuthService(users, testJWT(), authz, pub, log),
		jobs:        NewJobService(jobs, fakeTx{}, authz, log),
		apps:        NewApplicationService(fakeApplicationRepo{s}, jobs, fakeTx{}, authz, pub, log),
		events:      NewEventService(fakeEventRepo{s}, fakeTx{}, authz, log),
		donations:   NewDonationService(fakeDonationRepo{s}, authz, log),
		mentorships: NewMentorshipService(fakeMentorshipRepo{s}, users, fakeTx{}, authz, pub, log),
		messages:    NewMessageService(fakeConversationRepo{s}, users, fakeTx{}, notifier, pub, log),
	}
}

// seedUser stores a user directly and returns its caller identity
func (e *env) seedUser(name string, role models.RoleType, approved bool) auth.Caller {
	u := &models.User{
		Name:       name,
		Email:      name + "@example.edu",
		Role:       role,
		IsApproved: approved,
	}
	if err := (fakeUserRepo{e.store}).Create(context.Background(), u); err != nil {
		panic(err)
	}
	return auth.NewCaller(u)
}
