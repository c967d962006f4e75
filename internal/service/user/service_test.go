package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifesure-service/internal/domain/user"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type fakeRepository struct {
	byEmail map[string]*user.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*user.User)}
}

func (f *fakeRepository) Create(_ context.Context, u *user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return xerrors.ErrConflict
	}
	u.ID = ulid.Make().String()
	u.CreatedAt = time.Now()
	copied := *u
	f.byEmail[u.Email] = &copied
	return nil
}

func (f *fakeRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeRepository) List(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepository) UpdateRole(_ context.Context, email string, role user.Role) error {
	u, ok := f.byEmail[email]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeRepository) UpdateLastLogin(_ context.Context, email string, at time.Time) error {
	u, ok := f.byEmail[email]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.LastLogin.Time = at
	u.LastLogin.Valid = true
	return nil
}

func (f *fakeRepository) UpdateProfile(_ context.Context, updated *user.User) error {
	u, ok := f.byEmail[updated.Email]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.FullName = updated.FullName
	u.PhotoURL = updated.PhotoURL
	u.Phone = updated.Phone
	u.Address = updated.Address
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, zap.NewNop())
}

func TestService_RegisterIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com", FullName: "Alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !first.Created {
		t.Fatal("expected first registration to create the account")
	}
	if first.User.Role != user.RoleCustomer {
		t.Fatalf("expected default role customer, got %s", first.User.Role)
	}

	// Same email again: success, same record, nothing created.
	second, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com", FullName: "Alice B"})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if second.Created {
		t.Fatal("expected re-registration to be a no-op")
	}
	if second.User.ID != first.User.ID {
		t.Fatal("expected the same account back")
	}
	if second.User.FullName != "Alice" {
		t.Fatalf("re-registration must not overwrite the profile, got %q", second.User.FullName)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.byEmail))
	}
}

func TestService_RegisterNormalizesEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	res, err := svc.Register(context.Background(), &user.RegisterRequest{Email: "  Alice@Example.COM ", FullName: "Alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}

	if _, err := svc.Register(context.Background(), &user.RegisterRequest{Email: "   "}); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank email, got %v", err)
	}
}

func TestService_ResolveCallerSeesCurrentRole(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "gina@lifesure.app"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.byEmail["gina@lifesure.app"].Role = user.RoleAgent

	caller, err := svc.ResolveCaller(ctx, "gina@lifesure.app")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if caller.Role != user.RoleAgent {
		t.Fatalf("expected the stored role, got %s", caller.Role)
	}

	if _, err := svc.ResolveCaller(ctx, "ghost@lifesure.app"); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unregistered email, got %v", err)
	}
}

func TestService_ListIsAdminOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	admin := user.User{Email: "admin@lifesure.app", Role: user.RoleAdmin}
	if _, err := svc.List(ctx, admin); err != nil {
		t.Fatalf("list as admin: %v", err)
	}

	for _, role := range []user.Role{user.RoleAgent, user.RoleCustomer} {
		if _, err := svc.List(ctx, user.User{Email: "x@example.com", Role: role}); !errors.Is(err, xerrors.ErrForbidden) {
			t.Fatalf("expected ErrForbidden for %s, got %v", role, err)
		}
	}
}

func TestService_GetByEmailOwnerOrAdmin(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	owner := user.User{Email: "alice@example.com", Role: user.RoleCustomer}
	admin := user.User{Email: "admin@lifesure.app", Role: user.RoleAdmin}
	stranger := user.User{Email: "bob@example.com", Role: user.RoleCustomer}

	if _, err := svc.GetByEmail(ctx, owner, "alice@example.com"); err != nil {
		t.Fatalf("get as owner: %v", err)
	}
	if _, err := svc.GetByEmail(ctx, admin, "alice@example.com"); err != nil {
		t.Fatalf("get as admin: %v", err)
	}
	if _, err := svc.GetByEmail(ctx, stranger, "alice@example.com"); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
}

func TestService_UpdateRole(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	admin := user.User{Email: "admin@lifesure.app", Role: user.RoleAdmin}

	updated, err := svc.UpdateRole(ctx, admin, "alice@example.com", user.RoleAgent)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != user.RoleAgent {
		t.Fatalf("expected agent, got %s", updated.Role)
	}

	if _, err := svc.UpdateRole(ctx, admin, "alice@example.com", user.Role("superuser")); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}

	agent := user.User{Email: "gina@lifesure.app", Role: user.RoleAgent}
	if _, err := svc.UpdateRole(ctx, agent, "alice@example.com", user.RoleAdmin); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for agent, got %v", err)
	}
}

func TestService_UpdateProfileSelfOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com", FullName: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	owner := user.User{Email: "alice@example.com", Role: user.RoleCustomer}
	updated, err := svc.UpdateProfile(ctx, owner, &user.UpdateProfileRequest{Email: "alice@example.com", FullName: "Alice Brown", Phone: "0712"})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.FullName != "Alice Brown" {
		t.Fatalf("expected updated name, got %q", updated.FullName)
	}
	if repo.byEmail["alice@example.com"].FullName != "Alice Brown" {
		t.Fatal("expected the stored record to change")
	}

	// Admins do not get implicit ownership of another profile.
	admin := user.User{Email: "admin@lifesure.app", Role: user.RoleAdmin}
	if _, err := svc.UpdateProfile(ctx, admin, &user.UpdateProfileRequest{Email: "alice@example.com", FullName: "Hijacked"}); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin on foreign profile, got %v", err)
	}
}

func TestService_TouchLastLogin(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	owner := user.User{Email: "alice@example.com", Role: user.RoleCustomer}

	if err := svc.TouchLastLogin(ctx, owner, "alice@example.com"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if !repo.byEmail["alice@example.com"].LastLogin.Valid {
		t.Fatal("expected last login to be stamped")
	}

	other := user.User{Email: "bob@example.com", Role: user.RoleCustomer}
	if err := svc.TouchLastLogin(ctx, other, "alice@example.com"); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign stamp, got %v", err)
	}
}

func TestService_DeleteIsAdminOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	res, err := svc.Register(ctx, &user.RegisterRequest{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	owner := user.User{Email: "alice@example.com", Role: user.RoleCustomer}
	if err := svc.Delete(ctx, owner, res.User.ID); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	admin := user.User{Email: "admin@lifesure.app", Role: user.RoleAdmin}
	if err := svc.Delete(ctx, admin, res.User.ID); err != nil {
		t.Fatalf("delete as admin: %v", err)
	}
	if err := svc.Delete(ctx, admin, res.User.ID); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_EnsureAdminExists(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	// Not registered yet: nothing to promote.
	if err := svc.EnsureAdminExists(ctx, "admin@lifesure.app"); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before registration, got %v", err)
	}

	if _, err := svc.Register(ctx, &user.RegisterRequest{Email: "admin@lifesure.app"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.EnsureAdminExists(ctx, "admin@lifesure.app"); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if repo.byEmail["admin@lifesure.app"].Role != user.RoleAdmin {
		t.Fatal("expected bootstrap account to be admin")
	}

	// Second run is a no-op.
	if err := svc.EnsureAdminExists(ctx, "admin@lifesure.app"); err != nil {
		t.Fatalf("re-promote: %v", err)
	}
}
