package store

// Stores bundles one instance of every entity store. Constructed once at
// process start and passed by reference to consumers; there is no other
// way to reach a store.
type Stores struct {
	Clients        *ClientStore
	ActivityLogs   *ActivityLogStore
	Measurements   *MeasurementStore
	Plannings      *PlanningStore
	PhotoTrackings *PhotoTrackingStore
	Reminders      *ReminderStore
	Budgets        *BudgetStore
	Inputs         *InputStore
	Compositions   *CompositionStore
	Settings       *SettingsStore
}

func NewStores(s *Store) *Stores {
	return &Stores{
		Clients:        NewClientStore(s),
		ActivityLogs:   NewActivityLogStore(s),
		Measurements:   NewMeasurementStore(s),
		Plannings:      NewPlanningStore(s),
		PhotoTrackings: NewPhotoTrackingStore(s),
		Reminders:      NewReminderStore(s),
		Budgets:        NewBudgetStore(s),
		Inputs:         NewInputStore(s),
		Compositions:   NewCompositionStore(s),
		Settings:       NewSettingsStore(s),
	}
}
