package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"

	c "authflow/internal/core/domain/common"
)

type FakeActivationTokenSender struct {
	Sent        []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeActivationTokenSender() *FakeActivationTokenSender {
	return &FakeActivationTokenSender{}
}

func (s *FakeActivationTokenSender) SendActivationToken(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send activation token for user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, user)
	return nil
}

func (s *FakeActivationTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeActivationTokenGenerator struct {
	Token ActivationToken
}

func NewFakeActivationTokenGenerator(token string) *FakeActivationTokenGenerator {
	return &FakeActivationTokenGenerator{Token: ActivationToken(token)}
}

func (g *FakeActivationTokenGenerator) GenerateActivationToken() ActivationToken {
	return g.Token
}

type FakePasswordHasher struct {
	ReturnError bool
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	if h.ReturnError {
		return PasswordHash(""), fmt.Errorf("could not hash password")
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeUserRepository struct {
	Users                  []User
	ReturnError            bool
	SetPasswordReturnError bool
	lock                   sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %s", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:              maxID + 1,
		Email:           input.Email,
		Name:            input.Name,
		PasswordHash:    input.PasswordHash,
		CreatedAt:       input.CreatedAt,
		ActivatedAt:     input.ActivatedAt,
		ActivationToken: input.ActivationToken,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Activate(ctx context.Context, token ActivationToken, at time.Time) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not activate user")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if !u.IsActive() && u.ActivationToken.IsPresent && u.ActivationToken.Value == token {
			r.Users[ix].ActivatedAt = c.NewOptional(at, true)
			r.Users[ix].ActivationToken = c.NewOptional(ActivationToken(""), false)
			return r.Users[ix], nil
		}
	}
	return u, ErrInvalidActivationToken
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError || r.SetPasswordReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userID, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userID)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	if r.ReturnError {
		return ID(0), fmt.Errorf("could not delete session")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

func (r *FakeSessionRepository) DeleteAllForUser(ctx context.Context, userID ID) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete sessions of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	count := int64(0)
	for token, id := range r.UserIdByToken {
		if id == userID {
			delete(r.UserIdByToken, token)
			count++
		}
	}
	return count, nil
}

func (r *FakeSessionRepository) CountForUser(userID ID) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, id := range r.UserIdByToken {
		if id == userID {
			count++
		}
	}
	return count
}

type FakePasswordResetRepository struct {
	Requests          map[ID]PasswordResetRequest
	UpsertCount       int
	ReturnError       bool
	DeleteReturnError bool
	lock              sync.Mutex
}

func NewFakePasswordResetRepository() *FakePasswordResetRepository {
	return &FakePasswordResetRepository{Requests: make(map[ID]PasswordResetRequest)}
}

func (r *FakePasswordResetRepository) Upsert(ctx context.Context, request PasswordResetRequest) error {
	if r.ReturnError {
		return fmt.Errorf("could not upsert password reset request for user %d", request.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Requests[request.UserID] = request
	r.UpsertCount++
	return nil
}

func (r *FakePasswordResetRepository) GetActiveByTokenHash(
	ctx context.Context,
	hash PasswordResetTokenHash,
	now time.Time,
) (req PasswordResetRequest, err error) {
	if r.ReturnError {
		return req, fmt.Errorf("could not get password reset request")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, req := range r.Requests {
		if req.TokenHash == hash && req.IsActive(now) {
			return req, nil
		}
	}
	return req, ErrPasswordResetRequestDoesNotExist
}

func (r *FakePasswordResetRepository) MarkConsumed(
	ctx context.Context,
	userID ID,
	hash PasswordResetTokenHash,
	at time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not mark password reset request as consumed")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	req, ok := r.Requests[userID]
	if !ok || req.TokenHash != hash {
		return ErrPasswordResetRequestDoesNotExist
	}
	req.ConsumedAt = c.NewOptional(at, true)
	r.Requests[userID] = req
	return nil
}

func (r *FakePasswordResetRepository) Delete(ctx context.Context, userID ID, hash PasswordResetTokenHash) error {
	if r.ReturnError || r.DeleteReturnError {
		return fmt.Errorf("could not delete password reset request")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	req, ok := r.Requests[userID]
	if ok && req.TokenHash == hash {
		delete(r.Requests, userID)
	}
	return nil
}

func (r *FakePasswordResetRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete stale password reset requests")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	count := int64(0)
	for userID, req := range r.Requests {
		if !req.IsActive(now) {
			delete(r.Requests, userID)
			count++
		}
	}
	return count, nil
}

func (r *FakePasswordResetRepository) Get(userID ID) (PasswordResetRequest, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	req, ok := r.Requests[userID]
	return req, ok
}

func (r *FakePasswordResetRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Requests)
}

type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	generated   int
	lock        sync.Mutex
}

// NewFakePasswordResetTokenGenerator returns the given tokens in order, repeating the last one.
func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, token := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(token))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError || len(g.Tokens) == 0 {
		return PasswordResetToken(""), fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	ix := g.generated
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.generated++
	return g.Tokens[ix], nil
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakePasswordChangedPublisher struct {
	Published   []PasswordChangedEvent
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedPublisher() *FakePasswordChangedPublisher {
	return &FakePasswordChangedPublisher{}
}

func (p *FakePasswordChangedPublisher) PublishPasswordChanged(ctx context.Context, event PasswordChangedEvent) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish password changed event")
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

type FakePasswordChangedSender struct {
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedSender() *FakePasswordChangedSender {
	return &FakePasswordChangedSender{}
}

func (s *FakePasswordChangedSender) SendPasswordChanged(ctx context.Context, user User, at time.Time) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password changed notice")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, user)
	return nil
}

type FakeSessionEvent struct {
	UserID ID
	Kind   SessionEventKind
}

type FakeSessionEventPublisher struct {
	Published []FakeSessionEvent
	lock      sync.Mutex
}

func NewFakeSessionEventPublisher() *FakeSessionEventPublisher {
	return &FakeSessionEventPublisher{}
}

func (p *FakeSessionEventPublisher) PublishSessionEvent(ctx context.Context, userID ID, kind SessionEventKind) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, FakeSessionEvent{UserID: userID, Kind: kind})
}
