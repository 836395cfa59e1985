package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"valida-backend/internal/supabase"
)

// AuthAdmin is the slice of the GoTrue admin API the service needs.
type AuthAdmin interface {
	FindUserByEmail(ctx context.Context, email string) (*supabase.AuthUser, error)
	CreateUser(ctx context.Context, req supabase.CreateUserRequest) (*supabase.AuthUser, error)
}

type Mailer interface {
	Configured() bool
	SendWelcomeEmail(ctx context.Context, to, name, transactionCode, loginURL string) error
}

type ProfileUpserter interface {
	UpsertProfile(profileID uuid.UUID, email, name string) error
}

// ProvisioningService turns an approved purchase into an account. New
// accounts get the transaction code as their initial password and a
// first-access flag; existing accounts keep their credential untouched so a
// redelivered webhook can never silently reset a password. Only the display
// profile is upserted either way.
type ProvisioningService struct {
	auth     AuthAdmin
	mailer   Mailer
	profiles ProfileUpserter
	siteURL  string
}

func NewProvisioningService(auth AuthAdmin, mailer Mailer, profiles ProfileUpserter, siteURL string) *ProvisioningService {
	return &ProvisioningService{
		auth:     auth,
		mailer:   mailer,
		profiles: profiles,
		siteURL:  siteURL,
	}
}

// ProvisionPurchase returns the account id and whether it was created now.
func (s *ProvisioningService) ProvisionPurchase(ctx context.Context, email, name, transactionCode string) (string, bool, error) {
	existing, err := s.auth.FindUserByEmail(ctx, email)
	if err != nil {
		return "", false, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	if existing != nil {
		log.Printf("provisioning: user already exists for %s, credential untouched", email)
		if err := s.upsertProfile(existing.ID, email, name); err != nil {
			// Profile refresh is not worth failing the webhook over.
			log.Printf("provisioning: profile upsert failed for %s: %v", email, err)
		}
		return existing.ID, false, nil
	}

	initialPassword := transactionCode
	if initialPassword == "" {
		initialPassword = fallbackPassword()
		log.Printf("provisioning: no transaction code in payload for %s, generated fallback password", email)
	}

	user, err := s.auth.CreateUser(ctx, supabase.CreateUserRequest{
		Email:    email,
		Password: initialPassword,
		// Hotmart already validated the purchase email.
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"name":             name,
			"source":           "hotmart",
			"is_first_access":  true,
			"transaction_code": initialPassword,
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("erro ao criar usuário: %w", err)
	}

	if err := s.upsertProfile(user.ID, email, name); err != nil {
		log.Printf("provisioning: profile upsert failed for %s: %v", email, err)
	}

	// Credentials email is best-effort: account creation is the durable
	// side effect, a failed send must never fail the provisioning.
	s.sendCredentials(ctx, email, name, initialPassword)

	return user.ID, true, nil
}

func (s *ProvisioningService) upsertProfile(userID, email, name string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	return s.profiles.UpsertProfile(id, email, name)
}

func (s *ProvisioningService) sendCredentials(ctx context.Context, email, name, initialPassword string) {
	if !s.mailer.Configured() {
		log.Printf("provisioning: RESEND_API_KEY not set, skipping credentials email for %s", email)
		return
	}

	loginURL := strings.TrimSuffix(s.siteURL, "/") + "/login"
	if err := s.mailer.SendWelcomeEmail(ctx, email, name, initialPassword, loginURL); err != nil {
		log.Printf("provisioning: failed to send credentials email to %s: %v", email, err)
	}
}

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func fallbackPassword() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = passwordAlphabet[rand.Intn(len(passwordAlphabet))]
	}
	return fmt.Sprintf("HP%d%s", time.Now().UnixMilli(), suffix)
}
