package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/intask-dev/intask/internal/models"
	"github.com/intask-dev/intask/internal/repository"
	"github.com/intask-dev/intask/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the minimum length accepted when rotating a password.
// Registration accepts any non-empty password.
const MinPasswordLength = 8

var (
	ErrMissingFields        = errors.New("name, email, password, and role are required")
	ErrInvalidRole          = errors.New("role must be one of admin, lead, member")
	ErrPasswordTooShort     = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailTaken           = errors.New("email already registered")
	ErrTeamNotFound         = errors.New("specified team does not exist")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNoTeamAssigned       = errors.New("your account is not assigned to a team, please contact administrator")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login and password lifecycle.
type AuthService struct {
	userRepo  repository.UserRepository
	teamRepo  repository.TeamRepository
	jwtSecret string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, teamRepo repository.TeamRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		jwtSecret: jwtSecret,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	TeamID   *uint64
}

// Register creates a new user and issues a token for it. Leads registering
// without a team are placed into the sentinel "Unassigned Leads" team, which
// is created on first use and reused afterwards.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" || input.Role == "" {
		return nil, "", ErrMissingFields
	}
	if !input.Role.Valid() {
		return nil, "", ErrInvalidRole
	}

	teamID := input.TeamID
	if input.Role == models.RoleLead && teamID == nil {
		team, err := s.findOrCreateDefaultLeadTeam()
		if err != nil {
			return nil, "", err
		}
		teamID = &team.ID
	}

	if teamID != nil {
		if _, err := s.teamRepo.FindByID(*teamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrTeamNotFound
			}
			return nil, "", fmt.Errorf("failed to check team: %w", err)
		}
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		TeamID:       teamID,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The email check above races with concurrent registrations; the
		// unique index is the arbiter.
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, err := token.Generate(s.jwtSecret, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, signed, nil
}

func (s *AuthService) findOrCreateDefaultLeadTeam() (*models.Team, error) {
	team, err := s.teamRepo.FindByName(models.DefaultLeadTeamName)
	if err == nil {
		return team, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up default team: %w", err)
	}

	team = &models.Team{Name: models.DefaultLeadTeamName}
	if err := s.teamRepo.Create(team); err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost the race against a concurrent registration; reuse theirs.
			return s.teamRepo.FindByName(models.DefaultLeadTeamName)
		}
		return nil, fmt.Errorf("failed to create default team: %w", err)
	}
	return team, nil
}

// Login verifies credentials and issues a token. Non-admin users without a
// team assignment cannot obtain a session.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if user.Role != models.RoleAdmin && user.TeamID == nil {
		return nil, "", ErrNoTeamAssigned
	}

	signed, err := token.Generate(s.jwtSecret, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	user, err = s.userRepo.FindByIDWithTeam(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	return user, signed, nil
}

// GetUser retrieves a user by ID with the team relation loaded.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithTeam(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ChangePassword rotates the caller's password. The change timestamp
// invalidates every token issued before it.
func (s *AuthService) ChangePassword(userID uint64, current, next string) error {
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	return s.userRepo.UpdatePassword(userID, string(hashed), time.Now())
}
