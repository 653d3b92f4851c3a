package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/metrics"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/person"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown login and a wrong
// password so callers cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("incorrect username or password")

type Service struct {
	users   user.Repository
	people  person.Repository
	tokens  *TokenIssuer
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(users user.Repository, people person.Repository, tokens *TokenIssuer, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		people:  people,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}
}

// Authenticate verifies the login/password pair against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*user.User, error) {
	usr, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return usr, nil
}

// Login authenticates and issues an access token plus the linked person data.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	usr, err := s.Authenticate(ctx, username, password)
	if err != nil {
		s.metrics.RecordLogin(ctx, false)
		return nil, err
	}

	token, err := s.tokens.Issue(usr)
	if err != nil {
		return nil, err
	}

	resp := &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    usr.Login,
	}

	if usr.PersonID != nil {
		p, err := s.people.GetByID(ctx, *usr.PersonID)
		if err == nil {
			resp.Person = &PersonInfo{
				FirstName:  p.FirstName,
				LastName:   p.LastName,
				FatherName: p.FatherName,
			}
		} else if !errors.Is(err, person.ErrPersonNotFound) {
			return nil, err
		}
	}

	s.metrics.RecordLogin(ctx, true)
	s.logger.InfoContext(ctx, "user logged in", "login", usr.Login)

	return resp, nil
}

// UserFromToken validates a bearer token and re-loads the account it names.
// A token whose user has since been deleted is treated as invalid.
func (s *Service) UserFromToken(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	usr, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return usr, nil
}
