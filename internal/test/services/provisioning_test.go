package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"valida-backend/internal/services"
	"valida-backend/internal/supabase"
)

type fakeAuthAdmin struct {
	users   map[string]*supabase.AuthUser
	created []supabase.CreateUserRequest
}

func newFakeAuthAdmin() *fakeAuthAdmin {
	return &fakeAuthAdmin{users: make(map[string]*supabase.AuthUser)}
}

func (f *fakeAuthAdmin) FindUserByEmail(ctx context.Context, email string) (*supabase.AuthUser, error) {
	return f.users[email], nil
}

func (f *fakeAuthAdmin) CreateUser(ctx context.Context, req supabase.CreateUserRequest) (*supabase.AuthUser, error) {
	f.created = append(f.created, req)
	user := &supabase.AuthUser{ID: uuid.NewString(), Email: req.Email, UserMetadata: req.UserMetadata}
	f.users[req.Email] = user
	return user, nil
}

type fakeMailer struct {
	configured bool
	sent       []string
}

func (f *fakeMailer) Configured() bool {
	return f.configured
}

func (f *fakeMailer) SendWelcomeEmail(ctx context.Context, to, name, transactionCode, loginURL string) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeProfiles struct {
	upserts []string
}

func (f *fakeProfiles) UpsertProfile(profileID uuid.UUID, email, name string) error {
	f.upserts = append(f.upserts, email)
	return nil
}

func TestProvisionPurchase_NewAccount(t *testing.T) {
	auth := newFakeAuthAdmin()
	mailer := &fakeMailer{configured: true}
	profiles := &fakeProfiles{}
	svc := services.NewProvisioningService(auth, mailer, profiles, "https://app.example.com")

	userID, created, err := svc.ProvisionPurchase(context.Background(), "maria@example.com", "Maria Silva", "HP1234567890")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, userID)

	require.Len(t, auth.created, 1)
	req := auth.created[0]
	assert.Equal(t, "HP1234567890", req.Password)
	assert.True(t, req.EmailConfirm)
	assert.Equal(t, true, req.UserMetadata["is_first_access"])
	assert.Equal(t, "hotmart", req.UserMetadata["source"])

	assert.Equal(t, []string{"maria@example.com"}, profiles.upserts)
	assert.Equal(t, []string{"maria@example.com"}, mailer.sent)
}

func TestProvisionPurchase_ExistingAccountKeepsCredential(t *testing.T) {
	auth := newFakeAuthAdmin()
	existingID := uuid.NewString()
	auth.users["maria@example.com"] = &supabase.AuthUser{ID: existingID, Email: "maria@example.com"}
	mailer := &fakeMailer{configured: true}
	profiles := &fakeProfiles{}
	svc := services.NewProvisioningService(auth, mailer, profiles, "https://app.example.com")

	userID, created, err := svc.ProvisionPurchase(context.Background(), "maria@example.com", "Maria Silva", "HP999")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existingID, userID)

	// Redelivery must never reset a password or resend credentials.
	assert.Empty(t, auth.created)
	assert.Empty(t, mailer.sent)
	assert.Equal(t, []string{"maria@example.com"}, profiles.upserts)
}

func TestProvisionPurchase_NoTransactionCodeGeneratesPassword(t *testing.T) {
	auth := newFakeAuthAdmin()
	mailer := &fakeMailer{configured: true}
	svc := services.NewProvisioningService(auth, mailer, &fakeProfiles{}, "https://app.example.com")

	_, created, err := svc.ProvisionPurchase(context.Background(), "joao@example.com", "João", "")
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, auth.created, 1)
	assert.NotEmpty(t, auth.created[0].Password)
}

func TestProvisionPurchase_UnconfiguredMailerSkipsEmail(t *testing.T) {
	auth := newFakeAuthAdmin()
	mailer := &fakeMailer{configured: false}
	svc := services.NewProvisioningService(auth, mailer, &fakeProfiles{}, "https://app.example.com")

	_, created, err := svc.ProvisionPurchase(context.Background(), "ana@example.com", "Ana", "HP555")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Empty(t, mailer.sent)
}
