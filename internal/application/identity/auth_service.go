package identity

import (
	"context"
	"errors"
	"time"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles tenant registration and authentication
type AuthService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a tenant together with its first company admin account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tenant, err := identity.NewTenant(req.CompanyName, req.KVKNr, req.Email)
	if err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(tenant.ID, req.Email, req.Password, identity.RoleCompanyAdmin, uuid.Nil)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("company", tenant.Name))

	return &RegisterResult{TenantID: tenant.ID, UserID: admin.ID}, nil
}

// Login authenticates a user and returns a signed access token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", req.Email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt",
			zap.String("user_id", user.ID.String()),
			zap.String("tenant_id", user.TenantID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := s.jwtService.Generate(user.Principal())
	if err != nil {
		return nil, err
	}

	user.TouchLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login tracking is best effort; the session is already granted.
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserInfo(user),
	}, nil
}

// Authenticate validates a bearer token and returns the principal it carries.
func (s *AuthService) Authenticate(_ context.Context, tokenString string) (identity.Principal, error) {
	claims, err := s.jwtService.Validate(tokenString)
	if err != nil {
		return identity.Principal{}, shared.ErrUnauthorized
	}
	principal, err := claims.Principal()
	if err != nil {
		return identity.Principal{}, shared.ErrUnauthorized
	}
	return principal, nil
}

// TokenExpiration exposes the configured access token lifetime.
func (s *AuthService) TokenExpiration() time.Duration {
	return s.jwtService.GetAccessTokenExpiration()
}
