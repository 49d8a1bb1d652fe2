package user

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	stderrors "errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	redisrepo "github.com/muhammadheryan/eyewear-store/repository/redis"
	userrepo "github.com/muhammadheryan/eyewear-store/repository/user"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/muhammadheryan/eyewear-store/utils/pubsub"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	SendOTP(ctx context.Context, req *model.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, tokenString string) error
	ValidateToken(ctx context.Context, tokenString string) (string, error)
	GetSession(ctx context.Context, tokenString string) (*model.Session, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
	SubscribeAuthChanges(fn func(model.AuthChange)) func()
}

// OTPSender delivers one-time codes to a phone number.
type OTPSender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogOTPSender writes codes to the log. Used when no SMS gateway is configured.
type LogOTPSender struct{}

func (LogOTPSender) Send(_ context.Context, phone, code string) error {
	logger.Info("OTP issued", zap.String("phone", phone), zap.String("code", code))
	return nil
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	otpSender OTPSender
	events    *pubsub.Broker[model.AuthChange]
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, otpSender OTPSender) UserApp {
	if otpSender == nil {
		otpSender = LogOTPSender{}
	}
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		otpSender: otpSender,
		events:    pubsub.NewBroker[model.AuthChange](),
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         constant.RoleUser,
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.RegisterResponse{
		Name:  userEntity.FullName,
		Email: userEntity.Email,
	}, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if user.PasswordHash == "" {
		// phone-only account
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	return s.startSession(ctx, "[Login]", user)
}

func (s *UserAppImpl) SendOTP(ctx context.Context, req *model.SendOTPRequest) error {
	code, err := generateOTP()
	if err != nil {
		logger.Error("[SendOTP] err generateOTP", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetOTP(ctx, req.Phone, code, s.config.Auth.OTPExpiration); err != nil {
		logger.Error("[SendOTP] err redisRepo.SetOTP", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.otpSender.Send(ctx, req.Phone, code); err != nil {
		logger.Error("[SendOTP] err otpSender.Send", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) VerifyOTP(ctx context.Context, req *model.VerifyOTPRequest) (*model.LoginResponse, error) {
	code, err := s.redisRepo.GetOTP(ctx, req.Phone)
	if err != nil {
		if stderrors.Is(err, goredis.Nil) {
			return nil, errors.SetCustomError(constant.ErrInvalidOTP)
		}
		logger.Error("[VerifyOTP] err redisRepo.GetOTP", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(req.Code)) != 1 {
		return nil, errors.SetCustomError(constant.ErrInvalidOTP)
	}
	if err := s.redisRepo.DeleteOTP(ctx, req.Phone); err != nil {
		logger.Warn("[VerifyOTP] err redisRepo.DeleteOTP", zap.String("error", err.Error()))
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Phone: req.Phone})
	if err != nil {
		logger.Error("[VerifyOTP] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		user, err = s.userRepo.Create(ctx, &model.UserEntity{
			ID:    uuid.NewString(),
			Phone: req.Phone,
			Role:  constant.RoleUser,
		})
		if err != nil {
			logger.Error("[VerifyOTP] err userRepo.Create", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	return s.startSession(ctx, "[VerifyOTP]", user)
}

func (s *UserAppImpl) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	if err := s.redisRepo.DeleteSession(ctx, claims.ID); err != nil {
		logger.Error("[Logout] err redisRepo.DeleteSession", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	s.events.Publish(model.AuthChange{Event: constant.AuthEventSignedOut, UserID: claims.Subject})
	return nil
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	session, err := s.GetSession(ctx, tokenString)
	if err != nil {
		return "", err
	}
	return session.UserID, nil
}

func (s *UserAppImpl) GetSession(ctx context.Context, tokenString string) (*model.Session, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	redisUserID, err := s.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired session")
	}
	if redisUserID != claims.Subject {
		return nil, fmt.Errorf("token does not match user session")
	}

	session := &model.Session{UserID: claims.Subject, SessionID: claims.ID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[GetProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return toProfile(user), nil
}

func (s *UserAppImpl) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	if err := s.userRepo.UpdateFullName(ctx, userID, req.FullName); err != nil {
		logger.Error("[UpdateProfile] err userRepo.UpdateFullName", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(model.AuthChange{Event: constant.AuthEventUpdated, UserID: userID})
	return profile, nil
}

func (s *UserAppImpl) SubscribeAuthChanges(fn func(model.AuthChange)) func() {
	return s.events.Subscribe(fn)
}

func (s *UserAppImpl) startSession(ctx context.Context, op string, user *model.UserEntity) (*model.LoginResponse, error) {
	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error(op+" err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error(op+" err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.events.Publish(model.AuthChange{Event: constant.AuthEventSignedIn, UserID: user.ID})

	return &model.LoginResponse{
		Name:  user.FullName,
		Email: user.Email,
		Phone: user.Phone,
		Token: token,
	}, nil
}

func (s *UserAppImpl) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token missing jti")
	}
	return claims, nil
}

// generateJWT creates a JWT token for the user
func (s *UserAppImpl) generateJWT(userID string) (string, string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func toProfile(user *model.UserEntity) *model.Profile {
	return &model.Profile{ID: user.ID, FullName: user.FullName, Role: user.Role}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
