package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	appuser "github.com/muhammadheryan/eyewear-store/application/user"
	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	redismocks "github.com/muhammadheryan/eyewear-store/mocks/repository/redis"
	usermocks "github.com/muhammadheryan/eyewear-store/mocks/repository/user"
	"github.com/muhammadheryan/eyewear-store/model"
	cerr "github.com/muhammadheryan/eyewear-store/utils/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-jwt-signing",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
			OTPExpiration:  5 * time.Minute,
		},
	}
}

type captureSender struct {
	phone string
	code  string
}

func (c *captureSender) Send(_ context.Context, phone, code string) error {
	c.phone, c.code = phone, code
	return nil
}

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.RegisterResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: register new user",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{FullName: "Asha Rao", Email: "asha@example.com", Password: "password123"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.FullName == "Asha Rao" &&
							ent.Email == "asha@example.com" &&
							ent.Role == constant.RoleUser &&
							ent.ID != "" &&
							bcrypt.CompareHashAndPassword([]byte(ent.PasswordHash), []byte("password123")) == nil
					})).
					Return(&model.UserEntity{ID: "u-1", FullName: "Asha Rao", Email: "asha@example.com"}, nil).
					Once()
			},
			want: &model.RegisterResponse{Name: "Asha Rao", Email: "asha@example.com"},
		},
		{
			name: "error: email already exists",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{FullName: "Asha Rao", Email: "taken@example.com", Password: "password123"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "taken@example.com"}).
					Return(&model.UserEntity{ID: "u-9", Email: "taken@example.com"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: repository Get returns error",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{FullName: "Asha Rao", Email: "asha@example.com", Password: "password123"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: repository Create returns error",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRedisRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{FullName: "Asha Rao", Email: "asha@example.com", Password: "password123"},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, mock.Anything).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(nil, errors.New("create failed")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appuser.NewUserApp(testConfig(), tt.fields.userRepo, tt.fields.redisRepo, nil)

			got, err := app.Register(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Register() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.RedisRepository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.LoginRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: valid credentials",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			req:    &model.LoginRequest{Email: "asha@example.com", Password: "password123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
					Return(&model.UserEntity{ID: "u-1", FullName: "Asha Rao", Email: "asha@example.com", PasswordHash: string(hashed)}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), "u-1", time.Hour).
					Return(nil).
					Once()
			},
		},
		{
			name:   "error: user not found",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			req:    &model.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:   "error: wrong password",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			req:    &model.LoginRequest{Email: "asha@example.com", Password: "nope"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, mock.Anything).
					Return(&model.UserEntity{ID: "u-1", PasswordHash: string(hashed)}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
		{
			name:   "error: phone-only account has no password",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			req:    &model.LoginRequest{Email: "asha@example.com", Password: ""},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, mock.Anything).
					Return(&model.UserEntity{ID: "u-1", Phone: "+919800000000"}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
		{
			name:   "error: session store fails",
			fields: fields{userRepo: usermocks.NewUserRepository(t), redisRepo: redismocks.NewRedisRepository(t)},
			req:    &model.LoginRequest{Email: "asha@example.com", Password: "password123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, mock.Anything).
					Return(&model.UserEntity{ID: "u-1", PasswordHash: string(hashed)}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.Anything, "u-1", time.Hour).
					Return(errors.New("redis error")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.mockCall(tt.fields)
			app := appuser.NewUserApp(testConfig(), tt.fields.userRepo, tt.fields.redisRepo, nil)

			got, err := app.Login(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Token == "" {
				t.Fatal("Login() token should not be empty")
			}
		})
	}
}

func TestUserApp_OTPFlow(t *testing.T) {
	const phone = "+919812345678"

	t.Run("success: first phone login creates the account", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)
		sender := &captureSender{}
		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo, sender)

		var stored string
		redisRepo.
			On("SetOTP", mock.Anything, phone, mock.AnythingOfType("string"), 5*time.Minute).
			Run(func(args mock.Arguments) { stored = args.String(2) }).
			Return(nil).
			Once()
		require.NoError(t, app.SendOTP(context.Background(), &model.SendOTPRequest{Phone: phone}))
		assert.Len(t, sender.code, 6)
		assert.Equal(t, stored, sender.code)

		redisRepo.On("GetOTP", mock.Anything, phone).Return(stored, nil).Once()
		redisRepo.On("DeleteOTP", mock.Anything, phone).Return(nil).Once()
		userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: phone}).Return(nil, nil).Once()
		userRepo.
			On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
				return ent.Phone == phone && ent.PasswordHash == ""
			})).
			Return(&model.UserEntity{ID: "u-2", Phone: phone}, nil).
			Once()
		redisRepo.On("SetSession", mock.Anything, mock.Anything, "u-2", time.Hour).Return(nil).Once()

		got, err := app.VerifyOTP(context.Background(), &model.VerifyOTPRequest{Phone: phone, Code: stored})
		require.NoError(t, err)
		assert.Equal(t, phone, got.Phone)
		assert.NotEmpty(t, got.Token)
	})

	t.Run("error: wrong code", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)
		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo, &captureSender{})

		redisRepo.On("GetOTP", mock.Anything, phone).Return("123456", nil).Once()

		_, err := app.VerifyOTP(context.Background(), &model.VerifyOTPRequest{Phone: phone, Code: "654321"})
		assertErrCode(t, err, constant.ErrInvalidOTP)
	})

	t.Run("error: expired code", func(t *testing.T) {
		userRepo := usermocks.NewUserRepository(t)
		redisRepo := redismocks.NewRedisRepository(t)
		app := appuser.NewUserApp(testConfig(), userRepo, redisRepo, &captureSender{})

		redisRepo.On("GetOTP", mock.Anything, phone).Return("", goredis.Nil).Once()

		_, err := app.VerifyOTP(context.Background(), &model.VerifyOTPRequest{Phone: phone, Code: "123456"})
		assertErrCode(t, err, constant.ErrInvalidOTP)
	})
}

func TestUserApp_SessionLifecycle(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRedisRepository(t)
	app := appuser.NewUserApp(testConfig(), userRepo, redisRepo, nil)

	var events []model.AuthChange
	unsubscribe := app.SubscribeAuthChanges(func(c model.AuthChange) { events = append(events, c) })
	defer unsubscribe()

	var jti string
	userRepo.
		On("Get", mock.Anything, &model.UserFilter{Email: "asha@example.com"}).
		Return(&model.UserEntity{ID: "u-1", PasswordHash: string(hashed)}, nil).
		Once()
	redisRepo.
		On("SetSession", mock.Anything, mock.AnythingOfType("string"), "u-1", time.Hour).
		Run(func(args mock.Arguments) { jti = args.String(1) }).
		Return(nil).
		Once()

	resp, err := app.Login(context.Background(), &model.LoginRequest{Email: "asha@example.com", Password: "password123"})
	require.NoError(t, err)

	redisRepo.On("GetSession", mock.Anything, jti).Return("u-1", nil).Once()
	userID, err := app.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	_, err = app.ValidateToken(context.Background(), "invalid.token.string")
	assert.Error(t, err)

	redisRepo.On("DeleteSession", mock.Anything, jti).Return(nil).Once()
	require.NoError(t, app.Logout(context.Background(), resp.Token))

	redisRepo.On("GetSession", mock.Anything, jti).Return("", goredis.Nil).Once()
	_, err = app.ValidateToken(context.Background(), resp.Token)
	assert.Error(t, err)

	assert.Equal(t, []model.AuthChange{
		{Event: constant.AuthEventSignedIn, UserID: "u-1"},
		{Event: constant.AuthEventSignedOut, UserID: "u-1"},
	}, events)
}

func TestUserApp_UpdateProfile(t *testing.T) {
	userRepo := usermocks.NewUserRepository(t)
	redisRepo := redismocks.NewRedisRepository(t)
	app := appuser.NewUserApp(testConfig(), userRepo, redisRepo, nil)

	var got []model.AuthChange
	defer app.SubscribeAuthChanges(func(c model.AuthChange) { got = append(got, c) })()

	userRepo.On("UpdateFullName", mock.Anything, "u-1", "Asha R").Return(nil).Once()
	userRepo.
		On("Get", mock.Anything, &model.UserFilter{ID: "u-1"}).
		Return(&model.UserEntity{ID: "u-1", FullName: "Asha R", Role: constant.RoleAdmin}, nil).
		Once()

	profile, err := app.UpdateProfile(context.Background(), "u-1", &model.UpdateProfileRequest{FullName: "Asha R"})
	require.NoError(t, err)
	assert.Equal(t, &model.Profile{ID: "u-1", FullName: "Asha R", Role: constant.RoleAdmin}, profile)
	assert.Equal(t, []model.AuthChange{{Event: constant.AuthEventUpdated, UserID: "u-1"}}, got)
}
