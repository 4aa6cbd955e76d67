package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"levscore/internal/config"
	"levscore/internal/dto"
	"levscore/internal/model"
	"levscore/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateTTL = 10 * time.Minute

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	GoogleAuthURL(ctx context.Context) (*dto.GoogleURLResponse, error)
	GoogleCallback(ctx context.Context, req dto.GoogleCallbackRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	rdb    *redis.Client
	cfg    *config.Config
	google *oauth2.Config
}

func NewAuthService(users repository.UserRepository, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{
		users: users,
		rdb:   rdb,
		cfg:   cfg,
		google: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.Active {
		return nil, errors.New("invalid credentials")
	}
	if user.PasswordHash == nil {
		// Google-only account — no password to compare against
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("refresh token invalid or expired")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("refresh token invalid or expired")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("refresh token invalid or expired")
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("user not found or inactive")
	}
	return s.issueTokens(user)
}

// GoogleAuthURL issues a fresh OAuth state nonce (kept in Redis so the
// callback can verify it) and returns the Google consent URL.
func (s *authService) GoogleAuthURL(ctx context.Context) (*dto.GoogleURLResponse, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	state := base64.RawURLEncoding.EncodeToString(raw)

	if err := s.rdb.Set(ctx, "oauth:state:"+state, "1", oauthStateTTL).Err(); err != nil {
		return nil, err
	}
	return &dto.GoogleURLResponse{
		URL:   s.google.AuthCodeURL(state),
		State: state,
	}, nil
}

// googleUserInfo is the subset of the userinfo response we care about.
type googleUserInfo struct {
	Sub     string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *authService) GoogleCallback(ctx context.Context, req dto.GoogleCallbackRequest) (*dto.LoginResponse, error) {
	deleted, err := s.rdb.Del(ctx, "oauth:state:"+req.State).Result()
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, errors.New("oauth state invalid or expired")
	}

	token, err := s.google.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google account has no email")
	}

	user, err := s.upsertGoogleUser(ctx, info)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *authService) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.google.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("google userinfo decode failed: %w", err)
	}
	return &info, nil
}

// upsertGoogleUser links the Google identity to an existing account by
// subject first, then by email, creating a fresh account as last resort.
func (s *authService) upsertGoogleUser(ctx context.Context, info *googleUserInfo) (*model.User, error) {
	if user, err := s.users.FindByGoogleSub(ctx, info.Sub); err == nil {
		changed := false
		if info.Picture != "" && (user.AvatarURL == nil || *user.AvatarURL != info.Picture) {
			user.AvatarURL = &info.Picture
			changed = true
		}
		if changed {
			if err := s.users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	if user, err := s.users.FindByEmail(ctx, info.Email); err == nil {
		user.GoogleSub = &info.Sub
		if info.Picture != "" {
			user.AvatarURL = &info.Picture
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user := &model.User{
		Email:     info.Email,
		Name:      info.Name,
		GoogleSub: &info.Sub,
		Active:    true,
	}
	if info.Picture != "" {
		user.AvatarURL = &info.Picture
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	resp := userToResponse(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         userToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"name":    user.Name,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
