package household

import (
	"context"
	"errors"
	"testing"
	"time"

	"baby-tracker-go/internal/domain/errs"
)

type fakeHouseholdRepo struct {
	households map[string]*Household
	members    map[string]map[string]*Member
	codes      map[string]string
	deleted    []string
}

func newFakeHouseholdRepo() *fakeHouseholdRepo {
	return &fakeHouseholdRepo{
		households: make(map[string]*Household),
		members:    make(map[string]map[string]*Member),
		codes:      make(map[string]string),
	}
}

func (r *fakeHouseholdRepo) seed(id, name string, members map[string]Role) {
	r.households[id] = &Household{ID: id, Name: name, InviteCode: "CODE" + id[len(id)-2:], CreatedBy: "owner"}
	r.codes[r.households[id].InviteCode] = id
	r.members[id] = make(map[string]*Member)
	for userID, role := range members {
		r.members[id][userID] = &Member{HouseholdID: id, UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
	}
}

func (r *fakeHouseholdRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeHouseholdRepo) GetHousehold(ctx context.Context, householdID string) (*Household, error) {
	household, ok := r.households[householdID]
	if !ok {
		return nil, ErrHouseholdNotFound
	}
	copied := *household
	return &copied, nil
}

func (r *fakeHouseholdRepo) GetHouseholdByCode(ctx context.Context, code string) (*Household, error) {
	id, ok := r.codes[code]
	if !ok {
		return nil, ErrInviteCodeNotFound
	}
	return r.GetHousehold(ctx, id)
}

func (r *fakeHouseholdRepo) ListHouseholdsByUser(ctx context.Context, userID string) ([]HouseholdWithRole, error) {
	result := make([]HouseholdWithRole, 0)
	for id, members := range r.members {
		if member, ok := members[userID]; ok {
			result = append(result, HouseholdWithRole{Household: *r.households[id], Role: member.Role})
		}
	}
	return result, nil
}

func (r *fakeHouseholdRepo) GetMember(ctx context.Context, householdID, userID string) (*Member, error) {
	member, ok := r.members[householdID][userID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeHouseholdRepo) ListMembers(ctx context.Context, householdID string) ([]MemberProfile, error) {
	result := make([]MemberProfile, 0)
	for _, member := range r.members[householdID] {
		result = append(result, MemberProfile{UserID: member.UserID, Role: member.Role, JoinedAt: member.JoinedAt})
	}
	return result, nil
}

func (r *fakeHouseholdRepo) CreateHousehold(ctx context.Context, household *Household) error {
	r.households[household.ID] = household
	r.codes[household.InviteCode] = household.ID
	return nil
}

func (r *fakeHouseholdRepo) AddMember(ctx context.Context, member *Member) error {
	if r.members[member.HouseholdID] == nil {
		r.members[member.HouseholdID] = make(map[string]*Member)
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	r.members[member.HouseholdID][member.UserID] = member
	return nil
}

func (r *fakeHouseholdRepo) UpdateHouseholdName(ctx context.Context, householdID, name string) error {
	household, ok := r.households[householdID]
	if !ok {
		return ErrHouseholdNotFound
	}
	household.Name = name
	return nil
}

func (r *fakeHouseholdRepo) UpdateInviteCode(ctx context.Context, householdID, code string) error {
	household, ok := r.households[householdID]
	if !ok {
		return ErrHouseholdNotFound
	}
	delete(r.codes, household.InviteCode)
	household.InviteCode = code
	r.codes[code] = householdID
	return nil
}

func (r *fakeHouseholdRepo) UpdateMemberRole(ctx context.Context, householdID, userID string, role Role) error {
	member, ok := r.members[householdID][userID]
	if !ok {
		return ErrMemberNotFound
	}
	member.Role = role
	return nil
}

func (r *fakeHouseholdRepo) DeleteMember(ctx context.Context, householdID, userID string) error {
	delete(r.members[householdID], userID)
	return nil
}

func (r *fakeHouseholdRepo) DeleteHousehold(ctx context.Context, householdID string) error {
	if household, ok := r.households[householdID]; ok {
		delete(r.codes, household.InviteCode)
	}
	delete(r.households, householdID)
	delete(r.members, householdID)
	r.deleted = append(r.deleted, householdID)
	return nil
}

func (r *fakeHouseholdRepo) CountMembers(ctx context.Context, householdID string) (int64, error) {
	return int64(len(r.members[householdID])), nil
}

func (r *fakeHouseholdRepo) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	_, ok := r.codes[code]
	return ok, nil
}

func TestCreateHouseholdMakesCreatorOwner(t *testing.T) {
	repo := newFakeHouseholdRepo()
	svc := NewService(repo)

	result, err := svc.CreateHousehold(context.Background(), "user-1", "  The Smiths  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Name != "The Smiths" {
		t.Fatalf("expected name trimmed, got %q", result.Name)
	}
	if len(result.InviteCode) != inviteCodeLength {
		t.Fatalf("expected invite code length %d, got %q", inviteCodeLength, result.InviteCode)
	}

	member, err := repo.GetMember(context.Background(), result.ID, "user-1")
	if err != nil {
		t.Fatalf("expected member created, got %v", err)
	}
	if member.Role != RoleOwner {
		t.Fatalf("expected owner role, got %q", member.Role)
	}
}

func TestCreateHouseholdRequiresName(t *testing.T) {
	svc := NewService(newFakeHouseholdRepo())

	_, err := svc.CreateHousehold(context.Background(), "user-1", "   ")
	if !errs.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestJoinHouseholdAsCaregiver(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner})
	svc := NewService(repo)

	result, err := svc.JoinHousehold(context.Background(), "user-2", " code01 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ID != "hh-01" {
		t.Fatalf("expected household hh-01, got %s", result.ID)
	}
	if repo.members["hh-01"]["user-2"].Role != RoleCaregiver {
		t.Fatalf("expected caregiver role, got %q", repo.members["hh-01"]["user-2"].Role)
	}
}

func TestJoinHouseholdTwiceConflicts(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner})
	svc := NewService(repo)

	_, err := svc.JoinHousehold(context.Background(), "owner", "CODE01")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if !errs.IsConflict(err) {
		t.Fatalf("expected conflict kind, got %s", errs.KindOf(err))
	}
}

func TestJoinHouseholdUnknownCode(t *testing.T) {
	svc := NewService(newFakeHouseholdRepo())

	_, err := svc.JoinHousehold(context.Background(), "user-1", "ZZZZZZ")
	if !errors.Is(err, ErrInviteCodeNotFound) {
		t.Fatalf("expected ErrInviteCodeNotFound, got %v", err)
	}
}

func TestUpdateHouseholdRequiresAdmin(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner, "care": RoleCaregiver})
	svc := NewService(repo)

	_, err := svc.UpdateHousehold(context.Background(), Membership{HouseholdID: "hh-01", UserID: "care", Role: RoleCaregiver}, "New")
	if !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}

	updated, err := svc.UpdateHousehold(context.Background(), Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner}, "New")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "New" {
		t.Fatalf("expected renamed household, got %q", updated.Name)
	}
}

func TestDeleteHouseholdConfirmation(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner, "admin": RoleAdmin})
	svc := NewService(repo)
	owner := Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner}

	if err := svc.DeleteHousehold(context.Background(), Membership{HouseholdID: "hh-01", UserID: "admin", Role: RoleAdmin}, "Home"); !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected admin to be rejected, got %v", err)
	}
	if err := svc.DeleteHousehold(context.Background(), owner, "home"); !errors.Is(err, ErrConfirmationMismatch) {
		t.Fatalf("expected ErrConfirmationMismatch, got %v", err)
	}
	if err := svc.DeleteHousehold(context.Background(), owner, "Home"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.households["hh-01"]; ok {
		t.Fatalf("expected household deleted")
	}
}

func TestUpdateMemberRoleOwnerOnly(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner, "admin": RoleAdmin, "care": RoleCaregiver})
	svc := NewService(repo)

	err := svc.UpdateMemberRole(context.Background(), Membership{HouseholdID: "hh-01", UserID: "admin", Role: RoleAdmin}, "care", RoleViewer)
	if !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}

	owner := Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner}
	if err := svc.UpdateMemberRole(context.Background(), owner, "owner", RoleAdmin); !errors.Is(err, ErrCannotChangeOwnRole) {
		t.Fatalf("expected ErrCannotChangeOwnRole, got %v", err)
	}
	if err := svc.UpdateMemberRole(context.Background(), owner, "care", Role("BOSS")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := svc.UpdateMemberRole(context.Background(), owner, "care", RoleViewer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.members["hh-01"]["care"].Role != RoleViewer {
		t.Fatalf("expected viewer role, got %q", repo.members["hh-01"]["care"].Role)
	}
}

func TestUpdateMemberRoleTransfersOwnership(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner, "admin": RoleAdmin})
	svc := NewService(repo)

	owner := Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner}
	if err := svc.UpdateMemberRole(context.Background(), owner, "admin", RoleOwner); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.members["hh-01"]["admin"].Role != RoleOwner {
		t.Fatalf("expected new owner")
	}
	if repo.members["hh-01"]["owner"].Role != RoleAdmin {
		t.Fatalf("expected previous owner demoted to admin, got %q", repo.members["hh-01"]["owner"].Role)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{
		"owner":  RoleOwner,
		"admin":  RoleAdmin,
		"admin2": RoleAdmin,
		"care":   RoleCaregiver,
	})
	svc := NewService(repo)
	admin := Membership{HouseholdID: "hh-01", UserID: "admin", Role: RoleAdmin}

	if err := svc.RemoveMember(context.Background(), admin, "owner"); !errors.Is(err, ErrCannotRemoveOwner) {
		t.Fatalf("expected ErrCannotRemoveOwner, got %v", err)
	}
	if err := svc.RemoveMember(context.Background(), admin, "admin2"); !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected admin unable to remove admin, got %v", err)
	}
	if err := svc.RemoveMember(context.Background(), admin, "care"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.members["hh-01"]["care"]; ok {
		t.Fatalf("expected caregiver removed")
	}
	caregiver := Membership{HouseholdID: "hh-01", UserID: "care", Role: RoleCaregiver}
	if err := svc.RemoveMember(context.Background(), caregiver, "admin2"); !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected caregiver rejected, got %v", err)
	}
}

func TestLeaveHouseholdOwnerWithOthers(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner, "care": RoleCaregiver})
	svc := NewService(repo)

	err := svc.LeaveHousehold(context.Background(), Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner})
	if !errors.Is(err, ErrOwnerMustTransfer) {
		t.Fatalf("expected ErrOwnerMustTransfer, got %v", err)
	}
}

func TestLeaveHouseholdSoleOwnerDeletes(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner})
	svc := NewService(repo)

	if err := svc.LeaveHousehold(context.Background(), Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "hh-01" {
		t.Fatalf("expected household deleted, got %v", repo.deleted)
	}
}

func TestRegenerateInviteCode(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner})
	svc := NewService(repo)

	code, err := svc.RegenerateInviteCode(context.Background(), Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.households["hh-01"].InviteCode != code {
		t.Fatalf("expected stored code %q, got %q", code, repo.households["hh-01"].InviteCode)
	}
}
