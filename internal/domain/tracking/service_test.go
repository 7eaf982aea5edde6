package tracking_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"baby-tracker-go/internal/db"
	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/tracking"
	trackingrepo "baby-tracker-go/internal/repository/postgres/tracking"
	"baby-tracker-go/pkg/logger"
)

const childID = "5c3f1a9e-8d2b-4c71-9f0e-2a6b7d4e1c30"

var (
	caregiver = household.Membership{HouseholdID: "h1", UserID: "user-1", Role: household.RoleCaregiver}
	viewer    = household.Membership{HouseholdID: "h1", UserID: "user-2", Role: household.RoleViewer}
	base      = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []tracking.Event
}

func (p *recordingPublisher) Publish(event tracking.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func newService(t *testing.T) (*tracking.Service, *recordingPublisher) {
	t.Helper()

	log := logger.New(io.Discard, slog.LevelError, "text")
	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "tracking.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gormDB) })
	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	publisher := &recordingPublisher{}
	return tracking.NewServiceWithPublisher(trackingrepo.NewPostgres(gormDB), publisher), publisher
}

func at(offset time.Duration) *time.Time {
	t := base.Add(offset)
	return &t
}

func TestStartSleepRejectsSecondOpenSession(t *testing.T) {
	service, publisher := newService(t)
	ctx := context.Background()

	if _, err := service.StartSleep(ctx, caregiver, childID, tracking.StartSleepInput{SleepType: tracking.SleepNap, StartTime: at(0)}); err != nil {
		t.Fatalf("start sleep: %v", err)
	}
	_, err := service.StartSleep(ctx, caregiver, childID, tracking.StartSleepInput{SleepType: tracking.SleepNap, StartTime: at(time.Minute)})
	if !errors.Is(err, tracking.ErrSleepInProgress) {
		t.Fatalf("expected sleep in progress, got %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.events))
	}
}

func TestEndSleepClosesActiveSession(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	if _, err := service.StartSleep(ctx, caregiver, childID, tracking.StartSleepInput{SleepType: tracking.SleepNight, StartTime: at(0)}); err != nil {
		t.Fatalf("start sleep: %v", err)
	}
	quality := 4
	record, err := service.EndSleep(ctx, caregiver, childID, tracking.EndSleepInput{EndTime: at(90 * time.Minute), Quality: &quality})
	if err != nil {
		t.Fatalf("end sleep: %v", err)
	}
	if record.Duration() != 90*time.Minute {
		t.Fatalf("expected 90m, got %s", record.Duration())
	}

	active, err := service.ActiveSleep(ctx, caregiver, childID)
	if err != nil {
		t.Fatalf("active sleep: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active sleep")
	}

	if _, err := service.EndSleep(ctx, caregiver, childID, tracking.EndSleepInput{}); !errors.Is(err, tracking.ErrNoActiveSleep) {
		t.Fatalf("expected no active sleep, got %v", err)
	}
}

func TestViewerCannotWrite(t *testing.T) {
	service, _ := newService(t)

	_, err := service.LogDiaper(context.Background(), viewer, childID, tracking.LogDiaperInput{DiaperType: tracking.DiaperWet})
	if !errs.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBreastfeedingSwitchAndEnd(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	if _, err := service.StartBreastfeeding(ctx, caregiver, childID, tracking.StartBreastfeedingInput{Side: tracking.SideLeft, StartTime: at(0)}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.StartBreastfeeding(ctx, caregiver, childID, tracking.StartBreastfeedingInput{Side: tracking.SideLeft, StartTime: at(time.Minute)}); !errors.Is(err, tracking.ErrBreastfeedingInProgress) {
		t.Fatalf("expected conflict, got %v", err)
	}

	switched, err := service.SwitchBreastSide(ctx, caregiver, childID, tracking.SwitchSideInput{At: at(6 * time.Minute)})
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if *switched.Side != tracking.SideRight {
		t.Fatalf("expected RIGHT after switch, got %s", *switched.Side)
	}

	ended, err := service.EndBreastfeeding(ctx, caregiver, childID, tracking.EndBreastfeedingInput{EndTime: at(10 * time.Minute)})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	left, right := ended.BreastSeconds()
	if left != 360 || right != 240 {
		t.Fatalf("expected 360/240, got %d/%d", left, right)
	}
	if *ended.Side != tracking.SideBoth {
		t.Fatalf("expected BOTH, got %s", *ended.Side)
	}

	if _, err := service.SwitchBreastSide(ctx, caregiver, childID, tracking.SwitchSideInput{At: at(11 * time.Minute)}); !errors.Is(err, tracking.ErrNoActiveBreastfeeding) {
		t.Fatalf("expected no active session after end, got %v", err)
	}
	feedings, err := service.ListFeedings(ctx, caregiver, childID, tracking.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feedings) != 1 {
		t.Fatalf("expected one feeding, got %d", len(feedings))
	}
	if left, right := feedings[0].BreastSeconds(); left != 360 || right != 240 || feedings[0].EndTime == nil {
		t.Fatalf("stored session changed: %d/%d end=%v", left, right, feedings[0].EndTime)
	}
}

func TestSwitchRejectsBothSides(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	if _, err := service.StartBreastfeeding(ctx, caregiver, childID, tracking.StartBreastfeedingInput{Side: tracking.SideBoth, StartTime: at(0)}); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err := service.SwitchBreastSide(ctx, caregiver, childID, tracking.SwitchSideInput{At: at(time.Minute)})
	if !errors.Is(err, tracking.ErrSwitchRequiresSingleSide) {
		t.Fatalf("expected single side error, got %v", err)
	}
}

func TestLogBottleIsPointInTime(t *testing.T) {
	service, _ := newService(t)

	record, err := service.LogBottle(context.Background(), caregiver, childID, tracking.LogBottleInput{Time: at(0), AmountMl: 120})
	if err != nil {
		t.Fatalf("log bottle: %v", err)
	}
	if record.EndTime == nil || !record.EndTime.Equal(record.StartTime) {
		t.Fatalf("expected end time equal to start time")
	}
}

func TestLogSolidsRequiresFood(t *testing.T) {
	service, _ := newService(t)

	_, err := service.LogSolids(context.Background(), caregiver, childID, tracking.LogSolidsInput{Time: at(0), FoodItems: []string{" ", ""}})
	if !errors.Is(err, tracking.ErrFoodItemsRequired) {
		t.Fatalf("expected food items required, got %v", err)
	}
}

func TestListSleepIncludesSpanningSessions(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	// Started the evening before and ended inside the window.
	if _, err := service.LogSleep(ctx, caregiver, childID, tracking.LogSleepInput{SleepType: tracking.SleepNight, StartTime: base.Add(-10 * time.Hour), EndTime: base.Add(2 * time.Hour)}); err != nil {
		t.Fatalf("log spanning sleep: %v", err)
	}
	// Entirely before the window.
	if _, err := service.LogSleep(ctx, caregiver, childID, tracking.LogSleepInput{SleepType: tracking.SleepNap, StartTime: base.Add(-20 * time.Hour), EndTime: base.Add(-19 * time.Hour)}); err != nil {
		t.Fatalf("log old sleep: %v", err)
	}
	// Still running.
	if _, err := service.StartSleep(ctx, caregiver, childID, tracking.StartSleepInput{SleepType: tracking.SleepNap, StartTime: at(5 * time.Hour)}); err != nil {
		t.Fatalf("start sleep: %v", err)
	}

	from, to := base, base.Add(24*time.Hour)
	records, err := service.ListSleep(ctx, viewer, childID, tracking.Filter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("list sleep: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Open() {
		t.Fatalf("expected newest record first")
	}

	completed, err := service.ListSleep(ctx, viewer, childID, tracking.Filter{From: &from, To: &to, CompletedOnly: true})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("expected 1 completed record, got %d", len(completed))
	}
}

func TestActivitiesOfDifferentTypesRunTogether(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	for _, activity := range []tracking.ActivityType{tracking.ActivityBath, tracking.ActivityOutdoor} {
		if _, err := service.StartActivity(ctx, caregiver, childID, tracking.StartActivityInput{ActivityType: activity, StartTime: at(0)}); err != nil {
			t.Fatalf("start %s: %v", activity, err)
		}
	}
	if _, err := service.StartActivity(ctx, caregiver, childID, tracking.StartActivityInput{ActivityType: tracking.ActivityBath, StartTime: at(time.Minute)}); !errors.Is(err, tracking.ErrActivityInProgress) {
		t.Fatalf("expected activity conflict, got %v", err)
	}

	if _, err := service.EndActivity(ctx, caregiver, childID, tracking.EndActivityInput{ActivityType: tracking.ActivityBath, EndTime: at(20 * time.Minute)}); err != nil {
		t.Fatalf("end bath: %v", err)
	}
	active, err := service.ActiveActivities(ctx, caregiver, childID)
	if err != nil {
		t.Fatalf("active activities: %v", err)
	}
	if len(active) != 1 || active[0].ActivityType != tracking.ActivityOutdoor {
		t.Fatalf("expected outdoor to remain open, got %+v", active)
	}
}

func TestMedicineDoseByNameUsesDefaultDosage(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	medicine, err := service.CreateMedicine(ctx, caregiver, childID, tracking.CreateMedicineInput{Name: "Vitamin D", Dosage: "400 IU"})
	if err != nil {
		t.Fatalf("create medicine: %v", err)
	}

	dose, err := service.LogMedicineDose(ctx, caregiver, childID, tracking.LogDoseInput{MedicineName: "vitamin d", Time: at(0)})
	if err != nil {
		t.Fatalf("log dose: %v", err)
	}
	if dose.MedicineID != medicine.ID || dose.DosageGiven == nil || *dose.DosageGiven != "400 IU" {
		t.Fatalf("unexpected dose %+v", dose)
	}

	doses, err := service.ListMedicineDoses(ctx, viewer, childID, tracking.Filter{})
	if err != nil {
		t.Fatalf("list doses: %v", err)
	}
	if len(doses) != 1 || doses[0].MedicineName != "Vitamin D" {
		t.Fatalf("expected joined medicine name, got %+v", doses)
	}

	if _, err := service.DeactivateMedicine(ctx, caregiver, childID, medicine.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := service.LogMedicineDose(ctx, caregiver, childID, tracking.LogDoseInput{MedicineID: medicine.ID}); !errors.Is(err, tracking.ErrMedicineInactive) {
		t.Fatalf("expected inactive medicine, got %v", err)
	}
}

func TestDeleteMissingRecordIsNotFound(t *testing.T) {
	service, _ := newService(t)

	err := service.DeleteDiaper(context.Background(), caregiver, childID, "6f1d2c3b-0000-4000-8000-000000000000")
	if !errors.Is(err, tracking.ErrDiaperNotFound) {
		t.Fatalf("expected diaper not found, got %v", err)
	}
}
