package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
	"github.com/reviewhub/review-platform/internal/pkg/password"
)

type stubDispatcher struct {
	mu   sync.Mutex
	jobs []ports.MailJob
}

func (d *stubDispatcher) Enqueue(job ports.MailJob) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
}

func newUserFixture() (*UserService, *stubUserRepo, *stubDispatcher) {
	repo := newStubUserRepo()
	mail := &stubDispatcher{}
	return NewUserService(repo, mail, zerolog.Nop()), repo, mail
}

func validCreate() ports.CreateUserInput {
	return ports.CreateUserInput{
		FullName:    "Bob",
		Username:    "bob1",
		Email:       "b@x.com",
		PhoneNumber: "0987654321",
		Role:        "shop",
	}
}

func TestUserService_Create(t *testing.T) {
	svc, _, mail := newUserFixture()

	user, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == "" || user.Role != domain.RoleShop {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "" {
		t.Fatalf("expected generated password to be hashed and stored")
	}

	if len(mail.jobs) != 1 {
		t.Fatalf("expected one credentials mail, got %d", len(mail.jobs))
	}
	job := mail.jobs[0]
	if job.To != "b@x.com" {
		t.Fatalf("mail sent to %q", job.To)
	}
	mailed := extractTempPassword(t, job.Body)
	if len(mailed) != password.GeneratedLength {
		t.Fatalf("generated password has length %d", len(mailed))
	}
	if !password.Verify(mailed, user.PasswordHash) {
		t.Fatalf("mailed password does not match stored hash")
	}
}

func TestUserService_Create_Conflicts(t *testing.T) {
	svc, _, _ := newUserFixture()
	_, _ = svc.Create(context.Background(), validCreate())

	in := validCreate()
	in.Email = "other@x.com"
	in.PhoneNumber = "0111111111"
	if _, err := svc.Create(context.Background(), in); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	in = validCreate()
	in.Role = "owner"
	if _, err := svc.Create(context.Background(), in); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	svc, _, _ := newUserFixture()
	created, _ := svc.Create(context.Background(), validCreate())

	// Updating an account with its own current identity must not collide.
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		FullName:    "Bob Updated",
		Username:    created.Username,
		Email:       created.Email,
		PhoneNumber: created.PhoneNumber,
		Role:        "customer",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.FullName != "Bob Updated" || updated.Role != domain.RoleCustomer {
		t.Fatalf("unexpected user after update: %+v", updated)
	}

	other, _ := svc.Create(context.Background(), ports.CreateUserInput{
		FullName:    "Carol",
		Username:    "carol1",
		Email:       "c@x.com",
		PhoneNumber: "0222222222",
		Role:        "customer",
	})
	if _, err := svc.Update(context.Background(), other.ID, ports.UpdateUserInput{
		FullName:    "Carol",
		Username:    "carol1",
		Email:       created.Email,
		PhoneNumber: "0222222222",
		Role:        "customer",
	}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_ToggleBan(t *testing.T) {
	svc, repo, _ := newUserFixture()
	created, _ := svc.Create(context.Background(), validCreate())

	banned, err := svc.ToggleBan(context.Background(), created.ID)
	if err != nil || !banned {
		t.Fatalf("expected banned=true, got %v err=%v", banned, err)
	}
	stored, _ := repo.FindByID(context.Background(), created.ID)
	if !stored.Banned {
		t.Fatalf("ban flag not persisted")
	}

	banned, err = svc.ToggleBan(context.Background(), created.ID)
	if err != nil || banned {
		t.Fatalf("expected banned=false after second toggle, got %v err=%v", banned, err)
	}

	if _, err := svc.ToggleBan(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListAndDelete(t *testing.T) {
	svc, _, _ := newUserFixture()
	created, _ := svc.Create(context.Background(), validCreate())

	if _, err := svc.List(context.Background(), "ghosts"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	users, err := svc.List(context.Background(), "shop")
	if err != nil || len(users) != 1 {
		t.Fatalf("expected one shop account, got %d err=%v", len(users), err)
	}
	users, _ = svc.List(context.Background(), "customer")
	if len(users) != 0 {
		t.Fatalf("role filter leaked %d accounts", len(users))
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func extractTempPassword(t *testing.T, body string) string {
	t.Helper()
	const marker = "Your temporary password is: "
	idx := strings.Index(body, marker)
	if idx < 0 {
		t.Fatalf("mail body missing password marker: %q", body)
	}
	rest := body[idx+len(marker):]
	if end := strings.IndexAny(rest, "\n\r"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
