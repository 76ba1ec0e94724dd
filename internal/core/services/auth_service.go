package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/config"
	"gatepass/internal/core/domain"
	"gatepass/internal/pkg/idgen"
	"gatepass/internal/pkg/jwt"
	"gatepass/internal/pkg/password"
)

// AuthService handles login and student registration against the user directory
type AuthService struct {
	repo repositories.SnapshotRepository
	cfg  *config.Config
	now  func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(repo repositories.SnapshotRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// RegisterInput represents registration input. All fields are required.
type RegisterInput struct {
	FullName  string `json:"fullName" form:"fullName"`
	StudentID string `json:"studentId" form:"studentId"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Course    string `json:"course" form:"course"`
	Year      string `json:"year" form:"year"`
	Password  string `json:"password" form:"password"`
}

// UnmarshalJSON accepts numbers and booleans for every field
func (in *RegisterInput) UnmarshalJSON(data []byte) error {
	var aux struct {
		FullName  domain.Scalar `json:"fullName"`
		StudentID domain.Scalar `json:"studentId"`
		Email     domain.Scalar `json:"email"`
		Phone     domain.Scalar `json:"phone"`
		Course    domain.Scalar `json:"course"`
		Year      domain.Scalar `json:"year"`
		Password  domain.Scalar `json:"password"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.FullName = aux.FullName.String()
	in.StudentID = aux.StudentID.String()
	in.Email = aux.Email.String()
	in.Phone = aux.Phone.String()
	in.Course = aux.Course.String()
	in.Year = aux.Year.String()
	in.Password = aux.Password.String()
	return nil
}

func (in *RegisterInput) complete() bool {
	for _, v := range []string{in.FullName, in.StudentID, in.Email, in.Phone, in.Course, in.Year, in.Password} {
		if v == "" {
			return false
		}
	}
	return true
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// UnmarshalJSON accepts numeric usernames and passwords
func (in *LoginInput) UnmarshalJSON(data []byte) error {
	var aux struct {
		Username domain.Scalar `json:"username"`
		Password domain.Scalar `json:"password"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	in.Username = aux.Username.String()
	in.Password = aux.Password.String()
	return nil
}

// AuthResponse represents a successful login
type AuthResponse struct {
	User        *domain.UserResponse `json:"user"`
	AccessToken string               `json:"token"`
}

// Authenticate finds the user whose username and password both match
func (s *AuthService) Authenticate(ctx context.Context, username, pass string) (*domain.User, error) {
	snapshot := s.repo.Load(ctx)
	for i := range snapshot.Users {
		u := snapshot.Users[i]
		if u.Username == username && password.Matches(pass, u.Password) {
			return &u, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		string(user.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
	}, nil
}

// Register creates a student account. The student ID doubles as the username.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*domain.UserResponse, error) {
	if !input.complete() {
		return nil, domain.ErrMissingFields
	}

	stored := input.Password
	if s.cfg.Auth.PasswordHashing == config.PasswordBcrypt {
		hashed, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		stored = hashed
	}

	var created domain.User
	err := s.repo.Update(ctx, func(snapshot *domain.Snapshot) error {
		for _, u := range snapshot.Users {
			if u.Username == input.StudentID || u.StudentID == input.StudentID {
				return domain.ErrDuplicateStudentID
			}
		}
		for _, u := range snapshot.Users {
			if u.Email == input.Email {
				return domain.ErrDuplicateEmail
			}
		}

		now := s.now().UTC().Truncate(time.Millisecond)
		created = domain.User{
			ID:           idgen.NewAt(now),
			Username:     input.StudentID,
			Password:     stored,
			Role:         domain.RoleStudent,
			Name:         input.FullName,
			StudentID:    input.StudentID,
			Email:        input.Email,
			Phone:        input.Phone,
			Course:       input.Course,
			Year:         input.Year,
			RegisteredAt: &now,
		}
		snapshot.Users = append(snapshot.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Student registered: %s", created.Username)
	return created.ToResponse(), nil
}
