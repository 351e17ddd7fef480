package store

import (
	"testing"
	"time"
)

// ============================================================
// Activity logs
// ============================================================

func TestCreateActivityLogAssignsActivityIDs(t *testing.T) {
	s := newTestStore(t)
	ls := NewActivityLogStore(s)

	log, err := ls.Create(CreateActivityLog{
		Date:        time.Now().UTC(),
		ProjectName: "Residencial Aurora",
		Weather:     WeatherSunny,
		TeamCount:   8,
		Activities: []Activity{
			{Description: "Concretagem da laje"},
			{ID: "keep-me", Description: "Alvenaria"},
		},
		Status: DayProductive,
	})
	if err != nil {
		t.Fatal(err)
	}
	if log.Activities[0].ID == "" {
		t.Fatal("activity without id should get one")
	}
	if log.Activities[1].ID != "keep-me" {
		t.Fatal("supplied activity id should be kept")
	}
}

func TestActivityLogNilSlicesNormalized(t *testing.T) {
	s := newTestStore(t)
	ls := NewActivityLogStore(s)
	created, _ := ls.Create(CreateActivityLog{
		Date:        time.Now().UTC(),
		ProjectName: "Obra X",
		Weather:     WeatherRainy,
		Status:      DayUnproductive,
	})

	ls2 := NewActivityLogStore(s)
	got, err := ls2.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Activities == nil || got.Materials == nil || got.Equipment == nil {
		t.Fatalf("slices should never be nil after load: %+v", got)
	}
}

// ============================================================
// Measurements
// ============================================================

func TestMeasurementComputesTotals(t *testing.T) {
	s := newTestStore(t)
	ms := NewMeasurementStore(s)

	m, err := ms.Create(CreateMeasurement{
		MeasurementNumber: 1,
		ProjectName:       "Galpão Industrial",
		ReferenceDate:     time.Now().UTC(),
		Status:            MeasurementDraft,
		Items: []MeasurementItem{
			{ServiceCode: "03.01", ServiceName: "Concreto", Unit: "m3", CurrentQuantity: 10, UnitPrice: 5},
		},
		RetentionPercentage: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Items[0].TotalValue != 50 {
		t.Fatalf("expected item total 50, got %v", m.Items[0].TotalValue)
	}
	if m.Subtotal != 50 {
		t.Fatalf("expected subtotal 50, got %v", m.Subtotal)
	}
	if m.RetentionAmount != 2.5 {
		t.Fatalf("expected retention 2.5, got %v", m.RetentionAmount)
	}
	if m.NetValue != 47.5 {
		t.Fatalf("expected net 47.5, got %v", m.NetValue)
	}
}

func TestMeasurementRecomputeOnUpdate(t *testing.T) {
	s := newTestStore(t)
	ms := NewMeasurementStore(s)
	m, _ := ms.Create(CreateMeasurement{
		MeasurementNumber:   1,
		ProjectName:         "Obra",
		ReferenceDate:       time.Now().UTC(),
		Status:              MeasurementDraft,
		RetentionPercentage: 10,
	})

	// Item totals are derived even when the caller supplies stale ones.
	updated, err := ms.Update(m.ID, MeasurementPatch{
		Items: []MeasurementItem{
			{ServiceName: "Pintura", CurrentQuantity: 4, UnitPrice: 25, TotalValue: 999},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Items[0].TotalValue != 100 {
		t.Fatalf("stale item total should be recomputed, got %v", updated.Items[0].TotalValue)
	}
	if updated.Subtotal != 100 || updated.RetentionAmount != 10 || updated.NetValue != 90 {
		t.Fatalf("unexpected totals: %+v", updated)
	}
}

func TestMeasurementRoundsToCents(t *testing.T) {
	s := newTestStore(t)
	ms := NewMeasurementStore(s)

	m, _ := ms.Create(CreateMeasurement{
		MeasurementNumber: 1,
		ProjectName:       "Obra",
		ReferenceDate:     time.Now().UTC(),
		Status:            MeasurementDraft,
		Items: []MeasurementItem{
			{ServiceName: "Serviço", CurrentQuantity: 3, UnitPrice: 0.333},
		},
	})
	if m.Items[0].TotalValue != 1.0 {
		t.Fatalf("expected 1.00 after rounding, got %v", m.Items[0].TotalValue)
	}
}

// ============================================================
// Plannings
// ============================================================

func TestPlanningOverallProgressFromTasks(t *testing.T) {
	s := newTestStore(t)
	ps := NewPlanningStore(s)

	p, err := ps.Create(CreatePlanning{
		ProjectName: "Reforma Escola",
		StartDate:   time.Now().UTC(),
		EndDate:     time.Now().UTC().AddDate(0, 3, 0),
		Status:      PlanningActive,
		Tasks: []PlanningTask{
			{Name: "Fundação", Progress: 100},
			{Name: "Estrutura", Progress: 50},
			{Name: "Acabamento", Progress: 0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.OverallProgress != 50 {
		t.Fatalf("expected overall progress 50, got %d", p.OverallProgress)
	}
}

func TestPlanningManualProgressWithoutTasks(t *testing.T) {
	s := newTestStore(t)
	ps := NewPlanningStore(s)

	p, err := ps.Create(CreatePlanning{
		ProjectName:     "Obra sem cronograma",
		Status:          PlanningDraft,
		OverallProgress: 30,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.OverallProgress != 30 {
		t.Fatalf("manual progress should stand with no tasks, got %d", p.OverallProgress)
	}
}

// ============================================================
// Photo trackings
// ============================================================

func TestPhotoTrackingCapsPhotos(t *testing.T) {
	s := newTestStore(t)
	ps := NewPhotoTrackingStore(s)

	photos := make([]Photo, MaxPhotosPerRecord+1)
	_, err := ps.Create(CreatePhotoTracking{ProjectName: "Obra", Category: PhotoProgress, Photos: photos})
	if err == nil {
		t.Fatal("expected error past the photo cap")
	}
}

func TestPhotoPayloadsNotDurable(t *testing.T) {
	s := newTestStore(t)
	ps := NewPhotoTrackingStore(s)

	created, err := ps.Create(CreatePhotoTracking{
		ProjectName: "Residencial Aurora",
		Category:    PhotoProgress,
		Photos: []Photo{
			{Data: "base64payload", Caption: "Laje concluída"},
			{Data: "base64payload2"},
		},
		Tags: []string{"laje"},
	})
	if err != nil {
		t.Fatal(err)
	}
	// In the live session the photos are there.
	if len(created.Photos) != 2 || created.PhotoCount != 2 {
		t.Fatalf("expected 2 live photos, got %+v", created)
	}

	// After reload only the count survives.
	ps2 := NewPhotoTrackingStore(s)
	got, err := ps2.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Photos) != 0 {
		t.Fatalf("photo payloads should not be durable, got %d", len(got.Photos))
	}
	if got.PhotoCount != 2 {
		t.Fatalf("photo count should survive, got %d", got.PhotoCount)
	}
	if got.Tags == nil {
		t.Fatal("tags should never be nil after load")
	}
}

func TestPhotoTrackingUpdateSyncsCount(t *testing.T) {
	s := newTestStore(t)
	ps := NewPhotoTrackingStore(s)
	created, _ := ps.Create(CreatePhotoTracking{ProjectName: "Obra", Category: PhotoIssue})

	updated, err := ps.Update(created.ID, PhotoTrackingPatch{
		Photos: []Photo{{Data: "x"}, {Data: "y"}, {Data: "z"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.PhotoCount != 3 {
		t.Fatalf("expected count 3, got %d", updated.PhotoCount)
	}
	if updated.Photos[0].ID == "" {
		t.Fatal("photos should get ids on update")
	}
}

// ============================================================
// Reminders
// ============================================================

func TestReminderToggleCompleted(t *testing.T) {
	s := newTestStore(t)
	rs := NewReminderStore(s)

	r, err := rs.Create(CreateReminder{
		Text:     "Pedir orçamento de aço",
		DueDate:  time.Now().UTC().AddDate(0, 0, 7),
		Priority: PriorityHigh,
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Completed {
		t.Fatal("new reminder should not be completed")
	}

	done := true
	updated, err := rs.Update(r.ID, ReminderPatch{Completed: &done})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Completed {
		t.Fatal("reminder should be completed after toggle")
	}
}

// ============================================================
// Budgets
// ============================================================

func TestBudgetAppliesBDI(t *testing.T) {
	s := newTestStore(t)
	bs := NewBudgetStore(s)

	b, err := bs.Create(CreateBudget{
		ProjectName: "Casa Térrea",
		Status:      BudgetDraft,
		Items: []BudgetItem{
			{Description: "Fundação", Quantity: 10, UnitPrice: 6},
			{Description: "Alvenaria", Quantity: 20, UnitPrice: 2},
		},
		BDIPercentage: 25,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.Subtotal != 100 {
		t.Fatalf("expected subtotal 100, got %v", b.Subtotal)
	}
	if b.TotalValue != 125 {
		t.Fatalf("expected BDI-loaded total 125, got %v", b.TotalValue)
	}
}

func TestBudgetStatusTransition(t *testing.T) {
	s := newTestStore(t)
	bs := NewBudgetStore(s)
	b, _ := bs.Create(CreateBudget{ProjectName: "Obra", Status: BudgetDraft})

	status := BudgetApproved
	updated, err := bs.Update(b.ID, BudgetPatch{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != BudgetApproved {
		t.Fatalf("expected APPROVED, got %s", updated.Status)
	}
}

// ============================================================
// Inputs and compositions
// ============================================================

func TestInputLifecycle(t *testing.T) {
	s := newTestStore(t)
	is := NewInputStore(s)

	in, err := is.Create(CreateInput{
		Code:      "CIM-01",
		Name:      "Cimento CP-II 50kg",
		Unit:      "sc",
		UnitPrice: 32.5,
		Category:  InputMaterial,
	})
	if err != nil {
		t.Fatal(err)
	}

	price := 35.0
	updated, err := is.Update(in.ID, InputPatch{UnitPrice: &price})
	if err != nil {
		t.Fatal(err)
	}
	if updated.UnitPrice != 35 {
		t.Fatalf("expected price 35, got %v", updated.UnitPrice)
	}
	if updated.Code != "CIM-01" {
		t.Fatal("untouched fields should be kept")
	}
}

func TestCompositionUnitCost(t *testing.T) {
	s := newTestStore(t)
	cs := NewCompositionStore(s)

	c, err := cs.Create(CreateComposition{
		Code: "ALV-01",
		Name: "Alvenaria de bloco cerâmico",
		Unit: "m2",
		Items: []CompositionItem{
			{InputName: "Bloco cerâmico", Unit: "un", Coefficient: 13, UnitPrice: 1.5},
			{InputName: "Argamassa", Unit: "m3", Coefficient: 0.01, UnitPrice: 450},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	// 13*1.50 + 0.01*450 = 19.50 + 4.50
	if c.UnitCost != 24 {
		t.Fatalf("expected unit cost 24, got %v", c.UnitCost)
	}
}

// ============================================================
// Ordering
// ============================================================

func TestCollectionsAreMostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	rs := NewReminderStore(s)

	first, _ := rs.Create(CreateReminder{Text: "first", Priority: PriorityLow})
	second, _ := rs.Create(CreateReminder{Text: "second", Priority: PriorityLow})

	list := rs.List()
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatal("newest record should come first")
	}
}
