package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"jua-kali/internal/data/entity"
	"jua-kali/internal/data/repository"
	"jua-kali/internal/dto/request"
	"jua-kali/internal/dto/response"
	"jua-kali/pkg/apperr"
	"jua-kali/pkg/auth"
	"jua-kali/pkg/metrics"
	"jua-kali/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	// AuthenticateRequest turns an Authorization header into verified claims
	// for an account that still exists.
	AuthenticateRequest(ctx context.Context, authorization string) (*auth.Claims, error)
	AuthorizeRole(claims *auth.Claims, allowed ...entity.UserRole) error
	Logout(ctx context.Context, claims *auth.Claims) error
	Session(ctx context.Context, authorization string, required ...entity.UserRole) response.SessionResponse
}

type authService struct {
	repo   *repository.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
	config utils.RegistrationConfig
	log    *zap.Logger

	// compared against when the email is unknown so both login failures
	// cost one bcrypt comparison
	dummyDigest string
}

func NewAuthService(
	repo *repository.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	config utils.RegistrationConfig,
	log *zap.Logger,
) AuthService {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		log.Warn("Failed to prepare dummy password digest", zap.Error(err))
	}

	return &authService{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		config:      config,
		log:         log.With(zap.String("service", "auth")),
		dummyDigest: dummy,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Any("errors", apperr.FieldErrors(err)))
		metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, err
	}

	// The validator counts runes; bcrypt counts bytes.
	if len(req.Password) > auth.MaxPasswordLength {
		metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
		return nil, apperr.Validation("validation failed", map[string]string{
			"password": fmt.Sprintf("Maximum length is %d bytes", auth.MaxPasswordLength),
		})
	}

	email := req.Email
	phone := req.PhoneNumber
	role := entity.UserRole(req.Role)
	location := req.Location

	if role == entity.RoleArtisan {
		fields := map[string]string{}
		if location == "" {
			fields["location"] = "Location is required for artisans"
		}
		if req.Bio == "" {
			fields["bio"] = "Bio is required for artisans"
		}
		if len(uniqueNames(req.Skills)) == 0 {
			fields["skills"] = "At least one skill is required for artisans"
		}
		if len(fields) > 0 {
			metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
			return nil, apperr.Validation("validation failed", fields)
		}
	}

	// 2. Reject duplicates early. The unique constraints still decide races.
	existing, err := s.repo.User.FindByEmailOrPhone(ctx, email, phone)
	if err != nil {
		s.log.Error("Failed to check existing account", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		metrics.AuthEventsTotal.WithLabelValues("register", "conflict").Inc()
		if existing.Email == email {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Conflict("phone number already registered")
	}

	// 3. Resolve skills
	var skillIDs []uuid.UUID
	if role == entity.RoleArtisan {
		ids, unknown, err := resolveSkills(ctx, s.repo.Skill, req.Skills)
		if err != nil {
			s.log.Error("Failed to resolve skills", zap.Error(err))
			return nil, apperr.Internal(err)
		}
		if len(unknown) > 0 {
			if s.config.StrictSkills {
				metrics.AuthEventsTotal.WithLabelValues("register", "invalid").Inc()
				return nil, apperr.Validation("validation failed", map[string]string{
					"skills": "Unknown skills: " + strings.Join(unknown, ", "),
				})
			}
			s.log.Warn("Dropping unknown skills on registration", zap.Strings("skills", unknown))
		}
		skillIDs = ids
	}

	// 4. Hash password
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	// 5. Save account, plus profile for artisans
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     req.FullName,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: digest,
		Role:         role,
		Location:     location,
	}

	var profile *entity.ArtisanProfile
	if role == entity.RoleArtisan {
		profile = &entity.ArtisanProfile{
			UserID:          user.ID,
			Bio:             req.Bio,
			YearsExperience: req.YearsExperience,
			IsAvailable:     true,
		}
	}

	if err := s.repo.User.Create(ctx, user, profile, skillIDs); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.AuthEventsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, duplicateAccountError(err)
		}
		return nil, apperr.Internal(err)
	}

	// 6. Issue token
	token, expiresAt, err := s.tokens.Issue(auth.Identity{
		AccountID: user.ID,
		Role:      string(user.Role),
		Email:     user.Email,
	})
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err)
	}

	metrics.AuthEventsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.Int("skills", len(skillIDs)),
	)

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	digest := s.dummyDigest
	if user != nil {
		digest = user.PasswordHash
	}
	if !s.hasher.Verify(req.Password, digest) || user == nil {
		metrics.AuthEventsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		s.log.Info("Login rejected")
		return nil, apperr.InvalidCredentials()
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{
		AccountID: user.ID,
		Role:      string(user.Role),
		Email:     user.Email,
	})
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err)
	}

	metrics.AuthEventsTotal.WithLabelValues("login", "success").Inc()
	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) AuthenticateRequest(ctx context.Context, authorization string) (*auth.Claims, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		metrics.AuthEventsTotal.WithLabelValues("authenticate", "missing").Inc()
		return nil, apperr.Unauthenticated("authentication required")
	}

	claims, err := s.tokens.Verify(ctx, token)
	if err != nil {
		if auth.IsTokenError(err) {
			metrics.AuthEventsTotal.WithLabelValues("authenticate", tokenFailureReason(err)).Inc()
			return nil, &apperr.Error{Kind: apperr.ErrUnauthenticated, Message: "token not valid", Cause: err}
		}
		s.log.Error("Failed to verify token", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	user, err := s.repo.User.FindByID(ctx, claims.UserID)
	if err != nil {
		s.log.Error("Failed to load authenticated user",
			zap.Error(err),
			zap.String("user_id", claims.UserID.String()),
		)
		return nil, apperr.Internal(err)
	}
	// A token asserts the account as it was at issue time. An email change
	// retires it like a role change would.
	if user == nil || string(user.Role) != claims.Role || user.Email != claims.Email {
		metrics.AuthEventsTotal.WithLabelValues("authenticate", "unknown_account").Inc()
		return nil, apperr.Unauthenticated("token not valid")
	}

	metrics.AuthEventsTotal.WithLabelValues("authenticate", "success").Inc()
	return claims, nil
}

func (s *authService) AuthorizeRole(claims *auth.Claims, allowed ...entity.UserRole) error {
	if claims == nil {
		return apperr.Unauthenticated("authentication required")
	}
	if !slices.Contains(allowed, entity.UserRole(claims.Role)) {
		metrics.AuthEventsTotal.WithLabelValues("authorize", "forbidden").Inc()
		return apperr.Forbidden("this action is not available for your account type")
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		s.log.Error("Failed to revoke token", zap.Error(err), zap.String("user_id", claims.UserID.String()))
		return apperr.Internal(err)
	}

	metrics.AuthEventsTotal.WithLabelValues("logout", "success").Inc()
	s.log.Info("User logged out", zap.String("user_id", claims.UserID.String()))
	return nil
}

// Session reports what a client should render. Infrastructure failures are
// logged and reported as anonymous.
func (s *authService) Session(ctx context.Context, authorization string, required ...entity.UserRole) response.SessionResponse {
	claims, err := s.AuthenticateRequest(ctx, authorization)
	if err != nil && errors.Is(err, apperr.ErrInternal) {
		s.log.Warn("Session check failed", zap.Error(err))
	}

	roles := make([]string, len(required))
	for i, r := range required {
		roles[i] = string(r)
	}

	in := auth.AccessInput{
		TokenPresent:  strings.TrimSpace(authorization) != "",
		TokenValid:    err == nil,
		RequiredRoles: roles,
	}
	resp := response.SessionResponse{}
	if claims != nil {
		in.Role = claims.Role
		resp.Role = claims.Role
		resp.UserID = claims.UserID.String()
	}
	resp.State = auth.ResolveAccess(in)
	return resp
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, auth.ErrTokenRevoked):
		return "revoked"
	default:
		return "malformed"
	}
}

func duplicateAccountError(err error) error {
	switch repository.DuplicateConstraint(err) {
	case "users_email_key":
		return apperr.Conflict("email already registered")
	case "users_phone_number_key":
		return apperr.Conflict("phone number already registered")
	default:
		return apperr.Conflict(fmt.Sprintf("account already exists: %s", repository.DuplicateConstraint(err)))
	}
}
