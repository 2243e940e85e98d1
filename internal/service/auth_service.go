package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AuthService coordinates registration and login flows for all three
// principal kinds.
type AuthService struct {
	seekers     repository.SeekerRepository
	agents      repository.AgentRepository
	admins      repository.AdminRepository
	tokenMgr    *auth.TokenManager
	throttle    *redis.Client
	bcryptCost  int
	maxAttempts int
	window      time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	SeekerRepo repository.SeekerRepository
	AgentRepo  repository.AgentRepository
	AdminRepo  repository.AdminRepository
	Redis      *redis.Client
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		seekers: deps.SeekerRepo,
		agents:  deps.AgentRepo,
		admins:  deps.AdminRepo,
		tokenMgr: auth.NewTokenManager(
			cfg.Auth.JWTSecret,
			cfg.Auth.SeekerTokenTTLDays,
			cfg.Auth.AgentTokenTTLDays,
			cfg.Auth.AdminTokenTTLDays,
		),
		throttle:    deps.Redis,
		bcryptCost:  cfg.Auth.BcryptCost,
		maxAttempts: cfg.Auth.LoginMaxAttempts,
		window:      cfg.Auth.LoginWindow(),
	}
}

// RegisterSeeker creates a new seeker account and issues a token.
func (s *AuthService) RegisterSeeker(ctx context.Context, name, email, password string) (*domain.Seeker, string, time.Time, error) {
	if _, err := s.seekers.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	seeker := &domain.Seeker{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.seekers.Create(ctx, seeker); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(seeker.ID, domain.SubjectKindSeeker)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return seeker, token, exp, nil
}

// LoginSeeker authenticates a seeker.
func (s *AuthService) LoginSeeker(ctx context.Context, email, password string) (*domain.Seeker, string, time.Time, error) {
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}
	seeker, err := s.seekers.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, s.loginFailure(ctx, email, err)
	}
	if err := auth.ComparePassword(seeker.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, s.loginFailure(ctx, email, nil)
	}
	s.clearThrottle(ctx, email)

	token, exp, err := s.tokenMgr.Issue(seeker.ID, domain.SubjectKindSeeker)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return seeker, token, exp, nil
}

// RegisterAgent creates a new agent account awaiting admin approval.
func (s *AuthService) RegisterAgent(ctx context.Context, name, email, password, agency string, phone *string) (*domain.Agent, string, time.Time, error) {
	if _, err := s.agents.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	agent := &domain.Agent{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		Agency:        agency,
		Phone:         phone,
		Approved:      false,
		AccountStatus: domain.AgentStatusActive,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(agent.ID, domain.SubjectKindAgent)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return agent, token, exp, nil
}

// LoginAgent authenticates an agent. Unapproved or suspended agents may
// still log in to view their account state; the gate blocks elevated
// routes later.
func (s *AuthService) LoginAgent(ctx context.Context, email, password string) (*domain.Agent, string, time.Time, error) {
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}
	agent, err := s.agents.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, s.loginFailure(ctx, email, err)
	}
	if err := auth.ComparePassword(agent.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, s.loginFailure(ctx, email, nil)
	}
	s.clearThrottle(ctx, email)

	token, exp, err := s.tokenMgr.Issue(agent.ID, domain.SubjectKindAgent)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return agent, token, exp, nil
}

// LoginAdmin authenticates an administrator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, s.loginFailure(ctx, email, err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, s.loginFailure(ctx, email, nil)
	}
	s.clearThrottle(ctx, email)

	token, exp, err := s.tokenMgr.Issue(admin.ID, domain.SubjectKindAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// ChangePassword verifies the current password before updating to the new
// hash. The new password is only hashed once the current one checks out.
func (s *AuthService) ChangePassword(ctx context.Context, principal *domain.Principal, currentPassword, newPassword string) error {
	switch principal.Kind {
	case domain.SubjectKindSeeker:
		seeker, err := s.seekers.GetByID(ctx, principal.SubjectID())
		if err != nil {
			return err
		}
		hash, err := s.rehash(seeker.PasswordHash, currentPassword, newPassword)
		if err != nil {
			return err
		}
		seeker.PasswordHash = hash
		return s.seekers.Update(ctx, seeker)
	case domain.SubjectKindAgent:
		agent, err := s.agents.GetByID(ctx, principal.SubjectID())
		if err != nil {
			return err
		}
		hash, err := s.rehash(agent.PasswordHash, currentPassword, newPassword)
		if err != nil {
			return err
		}
		agent.PasswordHash = hash
		return s.agents.Update(ctx, agent)
	case domain.SubjectKindAdmin:
		admin, err := s.admins.GetByID(ctx, principal.SubjectID())
		if err != nil {
			return err
		}
		hash, err := s.rehash(admin.PasswordHash, currentPassword, newPassword)
		if err != nil {
			return err
		}
		admin.PasswordHash = hash
		return s.admins.Update(ctx, admin)
	default:
		return apperrors.NewForbidden("password change not supported for this account")
	}
}

func (s *AuthService) rehash(currentHash, currentPassword, newPassword string) (string, error) {
	if err := auth.ComparePassword(currentHash, currentPassword); err != nil {
		return "", apperrors.NewUnauthorized("invalid credentials")
	}
	return auth.HashPassword(newPassword, s.bcryptCost)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func throttleKey(email string) string {
	return fmt.Sprintf("login:fail:%s", email)
}

func (s *AuthService) checkThrottle(ctx context.Context, email string) error {
	if s.throttle == nil || s.maxAttempts <= 0 {
		return nil
	}
	count, err := s.throttle.Get(ctx, throttleKey(email)).Int()
	if err != nil {
		// redis being down never blocks logins
		return nil
	}
	if count >= s.maxAttempts {
		return apperrors.NewTooManyAttempts("too many failed login attempts")
	}
	return nil
}

func (s *AuthService) loginFailure(ctx context.Context, email string, lookupErr error) error {
	if s.throttle != nil {
		key := throttleKey(email)
		if count, err := s.throttle.Incr(ctx, key).Result(); err == nil && count == 1 {
			s.throttle.Expire(ctx, key, s.window)
		}
	}
	if lookupErr != nil && lookupErr != pgx.ErrNoRows {
		return lookupErr
	}
	return apperrors.NewUnauthorized("invalid credentials")
}

func (s *AuthService) clearThrottle(ctx context.Context, email string) {
	if s.throttle != nil {
		s.throttle.Del(ctx, throttleKey(email))
	}
}
