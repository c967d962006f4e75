package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifesure-service/internal/domain/application"
	"lifesure-service/internal/domain/policy"
	"lifesure-service/internal/domain/user"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

var (
	admin         = user.User{Email: "admin@lifesure.app", Role: user.RoleAdmin}
	agentAssigned = user.User{Email: "gina@lifesure.app", Role: user.RoleAgent}
	agentOther    = user.User{Email: "omar@lifesure.app", Role: user.RoleAgent}
	customer      = user.User{Email: "alice@example.com", Role: user.RoleCustomer}
	customerOther = user.User{Email: "bob@example.com", Role: user.RoleCustomer}
)

// fakeStore implements Repository, PolicyReader and UserReader in memory.
type fakeStore struct {
	apps     map[string]*application.Application
	policies map[string]*policy.Policy
	users    map[string]*user.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:     make(map[string]*application.Application),
		policies: make(map[string]*policy.Policy),
		users:    make(map[string]*user.User),
	}
}

func (f *fakeStore) addPolicy(title string, purchaseCount int64) *policy.Policy {
	p := &policy.Policy{ID: ulid.Make().String(), Title: title, BasePremium: 120, PurchaseCount: purchaseCount}
	f.policies[p.ID] = p
	return p
}

func (f *fakeStore) addUser(u user.User) {
	copied := u
	f.users[u.Email] = &copied
}

func (f *fakeStore) Create(_ context.Context, a *application.Application) error {
	a.ID = ulid.Make().String()
	a.Status = application.StatusPending
	a.PaymentStatus = application.PaymentUnpaid
	a.PolicyStatus = application.PolicyNone
	a.SubmittedAt = time.Now()
	copied := *a
	f.apps[a.ID] = &copied
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) List(_ context.Context) ([]application.Application, error) {
	var out []application.Application
	for _, a := range f.apps {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) ListByAgent(_ context.Context, agentEmail string) ([]application.Application, error) {
	var out []application.Application
	for _, a := range f.apps {
		if a.AssignedAgent.Valid && a.AssignedAgent.String == agentEmail {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByCustomer(_ context.Context, customerEmail string) ([]application.Application, error) {
	var out []application.Application
	for _, a := range f.apps {
		if a.CustomerEmail == customerEmail {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateAssignedAgent(_ context.Context, id, agentEmail string) error {
	a, ok := f.apps[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	a.AssignedAgent.String = agentEmail
	a.AssignedAgent.Valid = true
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status application.Status) error {
	a, ok := f.apps[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeStore) ApproveWithPurchaseCount(_ context.Context, id, policyID string) error {
	a, ok := f.apps[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if a.Status == application.StatusApproved {
		return nil
	}
	p, ok := f.policies[policyID]
	if !ok {
		return xerrors.ErrNotFound
	}
	a.Status = application.StatusApproved
	p.PurchaseCount++
	return nil
}

func (f *fakeStore) Reject(_ context.Context, id, feedback string) error {
	a, ok := f.apps[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	a.Status = application.StatusRejected
	a.RejectionFeedback.String = feedback
	a.RejectionFeedback.Valid = true
	return nil
}

func (f *fakeStore) MarkPaid(_ context.Context, id string, dueDate time.Time) error {
	a, ok := f.apps[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	a.PaymentStatus = application.PaymentPaid
	a.PolicyStatus = application.PolicyActive
	a.DueDate.Time = dueDate
	a.DueDate.Valid = true
	return nil
}

// FindByEmail implements UserReader.
func (f *fakeStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, policyReader{store}, store, zap.NewNop())
}

// policyReader narrows fakeStore to PolicyReader without exposing the
// user-side FindByEmail under the same method set.
type policyReader struct{ store *fakeStore }

func (r policyReader) FindByID(ctx context.Context, id string) (*policy.Policy, error) {
	p, ok := r.store.policies[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func submit(t *testing.T, svc *Service, p *policy.Policy) *application.Application {
	t.Helper()
	a, err := svc.Submit(context.Background(), customer, &application.SubmitRequest{
		CustomerEmail: customer.Email,
		CustomerName:  "Alice",
		PolicyID:      p.ID,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return a
}

func TestService_SubmitInitialState(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)

	a := submit(t, svc, p)

	if a.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.PaymentStatus != application.PaymentUnpaid {
		t.Fatalf("expected unpaid, got %s", a.PaymentStatus)
	}
	if a.PolicyStatus != application.PolicyNone {
		t.Fatalf("expected policy status none, got %s", a.PolicyStatus)
	}
	if a.PolicyTitle != "Term Life 20" {
		t.Fatalf("expected policy title snapshot, got %q", a.PolicyTitle)
	}
	if a.PremiumAmount != 120 {
		t.Fatalf("expected premium snapshot 120, got %v", a.PremiumAmount)
	}
}

func TestService_SubmitGuards(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)

	// Customers may only submit for themselves.
	_, err := svc.Submit(context.Background(), customer, &application.SubmitRequest{
		CustomerEmail: customerOther.Email,
		CustomerName:  "Bob",
		PolicyID:      p.ID,
	})
	if !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for submitting on behalf of another, got %v", err)
	}

	// Agents and admins cannot submit at all.
	for _, caller := range []user.User{agentAssigned, admin} {
		_, err := svc.Submit(context.Background(), caller, &application.SubmitRequest{
			CustomerEmail: caller.Email,
			CustomerName:  "X",
			PolicyID:      p.ID,
		})
		if !errors.Is(err, xerrors.ErrForbidden) {
			t.Fatalf("expected ErrForbidden for role %s, got %v", caller.Role, err)
		}
	}

	// Unknown policy is invalid input, not a 500.
	_, err = svc.Submit(context.Background(), customer, &application.SubmitRequest{
		CustomerEmail: customer.Email,
		CustomerName:  "Alice",
		PolicyID:      ulid.Make().String(),
	})
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown policy, got %v", err)
	}
}

func TestService_ApproveIncrementsPurchaseCountOnce(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 5)
	svc := newTestService(store)
	a := submit(t, svc, p)

	updated, err := svc.SetStatus(context.Background(), admin, a.ID, application.StatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != application.StatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if got := store.policies[p.ID].PurchaseCount; got != 6 {
		t.Fatalf("expected purchase count 6, got %d", got)
	}

	// Replaying the approval must not count again.
	if _, err := svc.SetStatus(context.Background(), admin, a.ID, application.StatusApproved); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if got := store.policies[p.ID].PurchaseCount; got != 6 {
		t.Fatalf("expected purchase count to stay 6 after replay, got %d", got)
	}
}

func TestService_SetStatusGuards(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)
	a := submit(t, svc, p)

	// Customers cannot drive the lifecycle.
	_, err := svc.SetStatus(context.Background(), customer, a.ID, application.StatusApproved)
	if !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer, got %v", err)
	}
	if store.apps[a.ID].Status != application.StatusPending {
		t.Fatal("status must be unchanged after a denied transition")
	}

	// Agents can, even without being assigned.
	if _, err := svc.SetStatus(context.Background(), agentOther, a.ID, application.StatusApproved); err != nil {
		t.Fatalf("expected unassigned agent to be allowed, got %v", err)
	}

	_, err = svc.SetStatus(context.Background(), admin, a.ID, application.Status("archived"))
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestService_RejectIsTerminal(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)
	a := submit(t, svc, p)

	rejected, err := svc.Reject(context.Background(), agentOther, a.ID, "incomplete disclosure")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != application.StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if !rejected.RejectionFeedback.Valid || rejected.RejectionFeedback.String != "incomplete disclosure" {
		t.Fatalf("expected feedback to be stored, got %+v", rejected.RejectionFeedback)
	}

	_, err = svc.SetStatus(context.Background(), admin, a.ID, application.StatusPending)
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict on reviving a rejected application, got %v", err)
	}
}

func TestService_RejectRequiresFeedback(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)
	a := submit(t, svc, p)

	if _, err := svc.Reject(context.Background(), admin, a.ID, ""); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty feedback, got %v", err)
	}
}

func TestService_PayOwnershipAndGating(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)
	a := submit(t, svc, p)

	// Not approved yet: even the owner cannot pay.
	if _, err := svc.Pay(context.Background(), customer, a.ID); !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict before approval, got %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), admin, a.ID, application.StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// A different customer is denied and the payment state is untouched.
	if _, err := svc.Pay(context.Background(), customerOther, a.ID); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if store.apps[a.ID].PaymentStatus != application.PaymentUnpaid {
		t.Fatal("payment status must be unchanged after a denied pay")
	}

	paid, err := svc.Pay(context.Background(), customer, a.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.PaymentStatus != application.PaymentPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}
	if paid.PolicyStatus != application.PolicyActive {
		t.Fatalf("expected active, got %s", paid.PolicyStatus)
	}
	if !paid.DueDate.Valid {
		t.Fatal("expected due date to be set")
	}

	// Double payment conflicts.
	if _, err := svc.Pay(context.Background(), customer, a.ID); !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict on double payment, got %v", err)
	}
}

func TestService_AssignAgent(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	store.addUser(agentAssigned)
	store.addUser(customerOther)
	svc := newTestService(store)
	a := submit(t, svc, p)

	// Admin only.
	if _, err := svc.AssignAgent(context.Background(), agentAssigned, a.ID, agentAssigned.Email); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for agent, got %v", err)
	}

	// Assignee must be a registered agent.
	if _, err := svc.AssignAgent(context.Background(), admin, a.ID, customerOther.Email); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for customer assignee, got %v", err)
	}
	if _, err := svc.AssignAgent(context.Background(), admin, a.ID, "ghost@lifesure.app"); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unregistered assignee, got %v", err)
	}

	updated, err := svc.AssignAgent(context.Background(), admin, a.ID, agentAssigned.Email)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !updated.AssignedAgent.Valid || updated.AssignedAgent.String != agentAssigned.Email {
		t.Fatalf("expected assignment to %s, got %+v", agentAssigned.Email, updated.AssignedAgent)
	}
	if updated.Status != application.StatusPending {
		t.Fatalf("assignment must not change status, got %s", updated.Status)
	}
}

func TestService_ListByAgentNeverLeaks(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	store.addUser(agentAssigned)
	store.addUser(agentOther)
	svc := newTestService(store)

	first := submit(t, svc, p)
	second := submit(t, svc, p)

	if _, err := svc.AssignAgent(context.Background(), admin, first.ID, agentAssigned.Email); err != nil {
		t.Fatalf("assign first: %v", err)
	}
	if _, err := svc.AssignAgent(context.Background(), admin, second.ID, agentOther.Email); err != nil {
		t.Fatalf("assign second: %v", err)
	}

	// An agent may not read another agent's queue.
	if _, err := svc.ListByAgent(context.Background(), agentAssigned, agentOther.Email); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign queue, got %v", err)
	}

	apps, err := svc.ListByAgent(context.Background(), agentAssigned, agentAssigned.Email)
	if err != nil {
		t.Fatalf("list by agent: %v", err)
	}
	for _, a := range apps {
		if a.AssignedAgent.String != agentAssigned.Email {
			t.Fatalf("leaked application assigned to %s", a.AssignedAgent.String)
		}
	}
	if len(apps) != 1 || apps[0].ID != first.ID {
		t.Fatalf("expected exactly the first application, got %d entries", len(apps))
	}

	// ListAll for an agent is scoped the same way.
	scoped, err := svc.ListAll(context.Background(), agentOther)
	if err != nil {
		t.Fatalf("list all as agent: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != second.ID {
		t.Fatalf("expected agent-scoped listing, got %d entries", len(scoped))
	}
}

func TestService_ListAllRoles(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	svc := newTestService(store)
	submit(t, svc, p)

	all, err := svc.ListAll(context.Background(), admin)
	if err != nil {
		t.Fatalf("list all as admin: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 application, got %d", len(all))
	}

	if _, err := svc.ListAll(context.Background(), customer); !errors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for customer, got %v", err)
	}
}

func TestService_GetVisibility(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Term Life 20", 0)
	store.addUser(agentAssigned)
	svc := newTestService(store)
	a := submit(t, svc, p)

	if _, err := svc.AssignAgent(context.Background(), admin, a.ID, agentAssigned.Email); err != nil {
		t.Fatalf("assign: %v", err)
	}

	for _, caller := range []user.User{admin, agentAssigned, customer} {
		if _, err := svc.Get(context.Background(), caller, a.ID); err != nil {
			t.Fatalf("expected %s to read the application, got %v", caller.Email, err)
		}
	}

	for _, caller := range []user.User{agentOther, customerOther} {
		if _, err := svc.Get(context.Background(), caller, a.ID); !errors.Is(err, xerrors.ErrForbidden) {
			t.Fatalf("expected ErrForbidden for %s, got %v", caller.Email, err)
		}
	}
}

// Full walkthrough: submit, approve (counter bumps), pay, activate.
func TestService_Lifecycle(t *testing.T) {
	store := newFakeStore()
	p := store.addPolicy("Whole Life", 5)
	svc := newTestService(store)
	ctx := context.Background()

	a := submit(t, svc, p)
	if a.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}

	approved, err := svc.SetStatus(ctx, admin, a.ID, application.StatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != application.StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if got := store.policies[p.ID].PurchaseCount; got != 6 {
		t.Fatalf("expected purchase count 6, got %d", got)
	}

	paid, err := svc.Pay(ctx, customer, a.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.PaymentStatus != application.PaymentPaid || paid.PolicyStatus != application.PolicyActive {
		t.Fatalf("expected paid/active, got %s/%s", paid.PaymentStatus, paid.PolicyStatus)
	}

	// An unassigned agent may still reject per the role grant; what was
	// paid stays paid.
	rejected, err := svc.Reject(ctx, agentOther, a.ID, "post-payment audit failed")
	if err != nil {
		t.Fatalf("reject by unassigned agent: %v", err)
	}
	if rejected.Status != application.StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if rejected.PaymentStatus != application.PaymentPaid {
		t.Fatalf("payment status must survive rejection, got %s", rejected.PaymentStatus)
	}
}
