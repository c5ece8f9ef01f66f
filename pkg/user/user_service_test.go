package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// glebarez/sqlite gives every pooled connection its own :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Subscription{},
		&entities.Recipe{},
	))
	return db
}

// recorderMailer captures outgoing mail instead of talking to SMTP.
type recorderMailer struct {
	to      string
	subject string
	body    string
}

func (m *recorderMailer) Send(toEmail, subject, body string) error {
	m.to = toEmail
	m.subject = subject
	m.body = body
	return nil
}

func setupService(t *testing.T) (UserService, *recorderMailer, *gorm.DB) {
	db := setupTestDB(t)
	mailer := &recorderMailer{}
	return NewUserService(NewUserRepository(db), jwt.NewJWTService(), mailer), mailer, db
}

func registerUser(t *testing.T, svc UserService, username string) domain.UserResponse {
	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	return res
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := setupService(t)
	registerUser(t, svc, "alice")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice2@example.com",
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, _, db := setupService(t)
	created := registerUser(t, svc, "alice")

	var stored entities.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	require.NotEqual(t, "s3cret-pass", stored.Password)
	require.NotEmpty(t, stored.Password)
}

func TestLogin(t *testing.T) {
	svc, _, _ := setupService(t)
	registerUser(t, svc, "alice")

	res, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-pass",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAvatarLifecycle(t *testing.T) {
	svc, _, _ := setupService(t)
	created := registerUser(t, svc, "alice")

	require.NoError(t, svc.UpdateAvatar(context.Background(), created.ID, domain.UpdateAvatarRequest{
		Avatar: "https://cdn.example.com/alice.png",
	}))

	me, err := svc.Me(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/alice.png", me.Avatar)

	require.NoError(t, svc.DeleteAvatar(context.Background(), created.ID))
	me, err = svc.Me(context.Background(), created.ID)
	require.NoError(t, err)
	require.Empty(t, me.Avatar)
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, mailer, _ := setupService(t)
	registerUser(t, svc, "alice")

	require.NoError(t, svc.ForgotPassword(context.Background(), domain.ForgotPasswordRequest{
		Email: "alice@example.com",
	}))
	require.Equal(t, "alice@example.com", mailer.to)
	require.Contains(t, mailer.body, "reset-password?token=")

	// Reuse the service's own reset token instead of scraping the mail body.
	jwtService := jwt.NewJWTService()
	me, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	userID, err := jwtService.GetUserIDByToken(me.Token)
	require.NoError(t, err)

	token, err := jwtService.GenerateTokenResetPassword(map[string]any{"user_id": userID}, time.Minute*30)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    token,
		Password: "new-pass-123",
	}))

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "new-pass-123",
	})
	require.NoError(t, err)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc, mailer, _ := setupService(t)

	err := svc.ForgotPassword(context.Background(), domain.ForgotPasswordRequest{
		Email: "nobody@example.com",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.Empty(t, mailer.to)
}

func TestSubscribe(t *testing.T) {
	svc, _, _ := setupService(t)
	alice := registerUser(t, svc, "alice")
	bob := registerUser(t, svc, "bob")

	_, err := svc.Subscribe(context.Background(), alice.ID, alice.ID)
	require.ErrorIs(t, err, domain.ErrSelfSubscription)

	res, err := svc.Subscribe(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "bob", res.Username)
	require.True(t, res.IsSubscribed)

	_, err = svc.Subscribe(context.Background(), alice.ID, bob.ID)
	require.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	_, err = svc.Subscribe(context.Background(), alice.ID, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUnsubscribe(t *testing.T) {
	svc, _, _ := setupService(t)
	alice := registerUser(t, svc, "alice")
	bob := registerUser(t, svc, "bob")

	require.ErrorIs(t,
		svc.Unsubscribe(context.Background(), alice.ID, bob.ID),
		domain.ErrNotSubscribed,
	)

	_, err := svc.Subscribe(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(context.Background(), alice.ID, bob.ID))
	require.ErrorIs(t,
		svc.Unsubscribe(context.Background(), alice.ID, bob.ID),
		domain.ErrNotSubscribed,
	)
}

func TestGetSubscriptions(t *testing.T) {
	svc, _, db := setupService(t)
	alice := registerUser(t, svc, "alice")
	bob := registerUser(t, svc, "bob")
	registerUser(t, svc, "carol")

	bobID := uuid.MustParse(bob.ID)
	require.NoError(t, db.Create(&entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    bobID,
		Name:        "Borscht",
		Text:        "test recipe",
		CookingTime: 60,
	}).Error)

	_, err := svc.Subscribe(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	subs, err := svc.GetSubscriptions(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "bob", subs[0].Username)
	require.Equal(t, 1, subs[0].RecipesCount)
	require.Equal(t, "Borscht", subs[0].Recipes[0].Name)
}
