package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"festivo/models"
	"festivo/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	suppliers  map[string]*models.Supplier
	byCategory map[string][]models.Supplier
	findErr    error
}

func (d *stubDirectory) GetByID(id string) (*models.Supplier, error) {
	s, ok := d.suppliers[id]
	if !ok {
		return nil, errors.New("supplier not found")
	}
	return s, nil
}

func (d *stubDirectory) FindByCategory(category, excludeID string) ([]models.Supplier, error) {
	if d.findErr != nil {
		return nil, d.findErr
	}
	var out []models.Supplier
	for _, s := range d.byCategory[category] {
		if s.ID != excludeID {
			out = append(out, s)
		}
	}
	return out, nil
}

var resolverNow = time.Date(2025, 12, 16, 10, 0, 0, 0, time.UTC)

func newResolver(dir Directory) *DefaultReplacementService {
	return &DefaultReplacementService{
		Directory: dir,
		Engine:    &availability.DefaultEngine{Now: func() time.Time { return resolverNow }},
	}
}

func caterer(id string, blocked ...models.BlockedInterval) *models.Supplier {
	return &models.Supplier{
		ID:               id,
		Profile:          models.Profile{SupplierName: "Caterer " + id, Category: "caterer"},
		BlockedIntervals: blocked,
	}
}

func blockedAllDay(date string) models.BlockedInterval {
	return models.BlockedInterval{
		Date:      date,
		TimeSlots: []models.TimeSlot{models.SlotMorning, models.SlotAfternoon},
		Source:    models.SourceGoogleCalendar,
	}
}

func planWith(sup *models.Supplier) models.BookingPlan {
	dto := sup.ToDTO()
	return models.BookingPlan{
		PlanID: "plan-1",
		Slots:  []models.PlanSlot{{Category: "caterer", Supplier: &dto}},
	}
}

func TestResolveReplacementKeepsAvailableSupplier(t *testing.T) {
	incumbent := caterer("c1")
	dir := &stubDirectory{suppliers: map[string]*models.Supplier{"c1": incumbent}}

	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(incumbent), models.BookingRequest{Date: "2025-12-26"})

	require.NotNil(t, plan.Slots[0].Supplier)
	assert.Equal(t, "c1", plan.Slots[0].Supplier.ID)
	assert.False(t, plan.Slots[0].Replaced)
	assert.Empty(t, plan.Slots[0].Note)
}

func TestResolveReplacementPicksFirstClearingCandidate(t *testing.T) {
	incumbent := caterer("c1", blockedAllDay("2025-12-26"))
	blockedCandidate := caterer("c2", blockedAllDay("2025-12-26"))
	freeCandidate := caterer("c3")
	dir := &stubDirectory{
		suppliers:  map[string]*models.Supplier{"c1": incumbent},
		byCategory: map[string][]models.Supplier{"caterer": {*blockedCandidate, *freeCandidate}},
	}

	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(incumbent), models.BookingRequest{Date: "2025-12-26"})

	slot := plan.Slots[0]
	require.NotNil(t, slot.Supplier)
	assert.Equal(t, "c3", slot.Supplier.ID, "the first candidate that clears every check wins")
	assert.True(t, slot.Replaced)
	assert.Contains(t, slot.Note, "replaced:")
}

func TestResolveReplacementClearsSlotWhenNoCandidateFits(t *testing.T) {
	incumbent := caterer("c1", blockedAllDay("2025-12-26"))
	alsoBlocked := caterer("c2", blockedAllDay("2025-12-26"))
	dir := &stubDirectory{
		suppliers:  map[string]*models.Supplier{"c1": incumbent},
		byCategory: map[string][]models.Supplier{"caterer": {*alsoBlocked}},
	}

	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(incumbent), models.BookingRequest{Date: "2025-12-26"})

	slot := plan.Slots[0]
	assert.Nil(t, slot.Supplier, "an explicitly cleared slot, not a stale commitment")
	assert.True(t, slot.Replaced)
	assert.Contains(t, slot.Note, "no replacement found:")
}

func TestResolveReplacementExcludesIncumbentFromCandidates(t *testing.T) {
	incumbent := caterer("c1", blockedAllDay("2025-12-26"))
	dir := &stubDirectory{
		suppliers:  map[string]*models.Supplier{"c1": incumbent},
		byCategory: map[string][]models.Supplier{"caterer": {*incumbent}},
	}

	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(incumbent), models.BookingRequest{Date: "2025-12-26"})

	assert.Nil(t, plan.Slots[0].Supplier)
}

func TestResolveReplacementSkipsEmptySlots(t *testing.T) {
	dir := &stubDirectory{suppliers: map[string]*models.Supplier{}}
	plan := models.BookingPlan{Slots: []models.PlanSlot{{Category: "caterer"}}}

	resolved := newResolver(dir).ResolveReplacement(context.Background(),
		plan, models.BookingRequest{Date: "2025-12-26"})

	assert.Nil(t, resolved.Slots[0].Supplier)
	assert.False(t, resolved.Slots[0].Replaced)
}

func TestResolveReplacementMissingIncumbentTriggersReplacement(t *testing.T) {
	gone := caterer("c1")
	replacement := caterer("c2")
	dir := &stubDirectory{
		suppliers:  map[string]*models.Supplier{},
		byCategory: map[string][]models.Supplier{"caterer": {*replacement}},
	}

	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(gone), models.BookingRequest{Date: "2025-12-26"})

	slot := plan.Slots[0]
	require.NotNil(t, slot.Supplier)
	assert.Equal(t, "c2", slot.Supplier.ID)
	assert.True(t, slot.Replaced)
}

func TestResolveReplacementDirectoryFailureClearsSlot(t *testing.T) {
	incumbent := caterer("c1", blockedAllDay("2025-12-26"))
	dir := &stubDirectory{
		suppliers: map[string]*models.Supplier{"c1": incumbent},
		findErr:   errors.New("directory down"),
	}

	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(incumbent), models.BookingRequest{Date: "2025-12-26"})

	assert.Nil(t, plan.Slots[0].Supplier)
	assert.True(t, plan.Slots[0].Replaced)
}

func TestResolveReplacementHonoursCandidatePolicies(t *testing.T) {
	incumbent := caterer("c1", blockedAllDay("2025-12-26"))
	strict := caterer("c2")
	strict.SchedulePolicy = models.SchedulePolicy{MinAdvanceDays: 30}
	relaxed := caterer("c3")
	relaxed.SchedulePolicy = models.SchedulePolicy{MinAdvanceDays: 5}
	dir := &stubDirectory{
		suppliers:  map[string]*models.Supplier{"c1": incumbent},
		byCategory: map[string][]models.Supplier{"caterer": {*strict, *relaxed}},
	}

	// 2025-12-26 is 10 days out: too soon for c2, fine for c3.
	plan := newResolver(dir).ResolveReplacement(context.Background(),
		planWith(incumbent), models.BookingRequest{Date: "2025-12-26"})

	require.NotNil(t, plan.Slots[0].Supplier)
	assert.Equal(t, "c3", plan.Slots[0].Supplier.ID)
}
