package supplier

import (
	"errors"
	"testing"
	"time"

	"festivo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// stubRepo records mutations for assertions; lookups serve a single canned
// supplier.
type stubRepo struct {
	supplier *models.Supplier

	created  *models.Supplier
	added    []models.BlockedInterval
	removed  []string
	patches  []bson.M
	patchErr error
}

func (r *stubRepo) GetByID(id string) (*models.Supplier, error) {
	if r.supplier == nil || r.supplier.ID != id {
		return nil, errors.New("supplier not found")
	}
	return r.supplier, nil
}

func (r *stubRepo) GetByEmail(email string) (*models.Supplier, error) {
	if r.supplier == nil || r.supplier.Profile.Email != email {
		return nil, errors.New("supplier not found")
	}
	return r.supplier, nil
}

func (r *stubRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Supplier, error) {
	return r.GetByID(id)
}

func (r *stubRepo) GetByCategory(string, string) ([]models.Supplier, error)   { return nil, nil }
func (r *stubRepo) GetSecondaryListings(string) ([]models.Supplier, error)    { return nil, nil }
func (r *stubRepo) GetBySubscriptionChannel(string) (*models.Supplier, error) { return nil, nil }

func (r *stubRepo) Create(s *models.Supplier) error {
	r.created = s
	return nil
}

func (r *stubRepo) Update(*models.Supplier) error { return nil }
func (r *stubRepo) Delete(string) error           { return nil }

func (r *stubRepo) UpdateSet(_ string, doc bson.M) error {
	if r.patchErr != nil {
		return r.patchErr
	}
	r.patches = append(r.patches, doc)
	return nil
}

func (r *stubRepo) UpdateCalendarConnection(string, *models.CalendarConnection) error { return nil }

func (r *stubRepo) AddBlockedInterval(_ string, interval models.BlockedInterval) error {
	r.added = append(r.added, interval)
	return nil
}

func (r *stubRepo) RemoveBlockedInterval(_, blockID string) error {
	r.removed = append(r.removed, blockID)
	return nil
}

func (r *stubRepo) ReplaceBlockedIntervals(string, string, []models.BlockedInterval, *models.SyncRun) error {
	return nil
}

func (r *stubRepo) DeleteSyncRun(string, string) error { return nil }

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultSupplierService{Repo: &stubRepo{}}

	_, err := svc.Register(&models.Supplier{})
	assert.True(t, IsValidation(err))

	_, err = svc.Register(&models.Supplier{
		Profile:  models.Profile{Email: "a@b.com"},
		Security: models.Security{Password: "hunter2"},
	})
	assert.True(t, IsValidation(err), "category is required")

	_, err = svc.Register(&models.Supplier{
		Profile:            models.Profile{Email: "a@b.com", Category: "venue"},
		Security:           models.Security{Password: "hunter2"},
		InheritsConnection: true,
	})
	assert.True(t, IsValidation(err), "secondary listing without a primary reference")
}

func TestRegisterHashesCredentialsAndIssuesToken(t *testing.T) {
	repo := &stubRepo{}
	svc := &DefaultSupplierService{Repo: repo}

	out, err := svc.Register(&models.Supplier{
		Profile:  models.Profile{Email: "a@b.com", Category: "venue"},
		Security: models.Security{Password: "hunter2"},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.NotEmpty(t, out.ID)
	assert.Empty(t, out.Security.Password, "plaintext password must not survive registration")
	assert.NotEmpty(t, out.Security.PasswordHash)
	assert.NotEmpty(t, out.Security.Token)
	assert.NotEmpty(t, out.Security.TokenHash)
	assert.Equal(t, "active", out.Profile.Status)
}

func TestUpdatePolicyValidation(t *testing.T) {
	svc := &DefaultSupplierService{Repo: &stubRepo{}}

	tests := []struct {
		name   string
		policy models.SchedulePolicy
	}{
		{"negative min", models.SchedulePolicy{MinAdvanceDays: -1}},
		{"min exceeds max", models.SchedulePolicy{MinAdvanceDays: 30, MaxAdvanceDays: 7}},
		{"boundary out of range", models.SchedulePolicy{TimeSlotBoundaryHour: 24}},
		{"bad working hours", models.SchedulePolicy{
			WorkingHours: map[time.Weekday]models.DayHours{
				time.Monday: {Enabled: true, Start: "nine", End: "17:00"},
			},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.UpdatePolicy("sup-1", tc.policy)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestUpdatePolicyStoresValidPolicy(t *testing.T) {
	repo := &stubRepo{}
	svc := &DefaultSupplierService{Repo: repo}

	err := svc.UpdatePolicy("sup-1", models.SchedulePolicy{
		MinAdvanceDays: 7,
		MaxAdvanceDays: 180,
		WorkingHours: map[time.Weekday]models.DayHours{
			time.Saturday: {Enabled: true, Start: "10:00", End: "22:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.patches, 1)
	assert.Contains(t, repo.patches[0], "schedulePolicy")
}

func TestAddManualBlockNormalisesDate(t *testing.T) {
	repo := &stubRepo{supplier: &models.Supplier{ID: "sup-1"}}
	svc := &DefaultSupplierService{Repo: repo}

	interval, err := svc.AddManualBlock("sup-1", ManualBlockRequest{
		Date:      "26th December 2025",
		TimeSlots: []models.TimeSlot{models.SlotMorning},
		Label:     "Family day",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-12-26", interval.Date)
	assert.Equal(t, models.SourceManual, interval.Source)
	assert.NotEmpty(t, interval.BlockID)
	require.Len(t, repo.added, 1)
}

func TestAddManualBlockValidation(t *testing.T) {
	repo := &stubRepo{supplier: &models.Supplier{ID: "sup-1"}}
	svc := &DefaultSupplierService{Repo: repo}

	_, err := svc.AddManualBlock("sup-1", ManualBlockRequest{Date: "whenever", TimeSlots: []models.TimeSlot{models.SlotMorning}})
	assert.True(t, IsValidation(err))

	_, err = svc.AddManualBlock("sup-1", ManualBlockRequest{Date: "2025-12-26"})
	assert.True(t, IsValidation(err), "at least one slot required")

	_, err = svc.AddManualBlock("sup-1", ManualBlockRequest{Date: "2025-12-26", TimeSlots: []models.TimeSlot{"evening"}})
	assert.True(t, IsValidation(err), "unknown slot name")
}

func TestAddManualBlockRejectsDuplicateSlot(t *testing.T) {
	repo := &stubRepo{supplier: &models.Supplier{
		ID: "sup-1",
		BlockedIntervals: []models.BlockedInterval{
			{Date: "2025-12-26", TimeSlots: []models.TimeSlot{models.SlotMorning}, Source: models.SourceManual},
			{Date: "2025-12-26", TimeSlots: []models.TimeSlot{models.SlotAfternoon}, Source: models.SourceGoogleCalendar},
		},
	}}
	svc := &DefaultSupplierService{Repo: repo}

	_, err := svc.AddManualBlock("sup-1", ManualBlockRequest{
		Date:      "2025-12-26",
		TimeSlots: []models.TimeSlot{models.SlotMorning},
	})
	assert.True(t, IsValidation(err))

	// A slot blocked only by a calendar source does not collide with a new
	// manual block.
	_, err = svc.AddManualBlock("sup-1", ManualBlockRequest{
		Date:      "2025-12-26",
		TimeSlots: []models.TimeSlot{models.SlotAfternoon},
	})
	assert.NoError(t, err)
}

func TestListBlocksFiltersBySource(t *testing.T) {
	repo := &stubRepo{supplier: &models.Supplier{
		ID: "sup-1",
		BlockedIntervals: []models.BlockedInterval{
			{BlockID: "m1", Source: models.SourceManual},
			{BlockID: "g1", Source: models.SourceGoogleCalendar},
		},
	}}
	svc := &DefaultSupplierService{Repo: repo}

	all, err := svc.ListBlocks("sup-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	manual, err := svc.ListBlocks("sup-1", models.SourceManual)
	require.NoError(t, err)
	require.Len(t, manual, 1)
	assert.Equal(t, "m1", manual[0].BlockID)
}
