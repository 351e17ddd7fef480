package store

// SettingsStore is the single-record variant of an entity store: no id,
// no collection, one persisted object. There is no delete; Reset writes
// the defaults back.
type SettingsStore struct {
	store    *Store
	settings CompanySettings
}

func NewSettingsStore(s *Store) *SettingsStore {
	ss := &SettingsStore{store: s}
	ss.load()
	return ss
}

// DefaultSettings is the first-run (and reset) company profile.
func DefaultSettings() CompanySettings {
	return CompanySettings{
		CompanyName: "Minha Construtora",
		Theme:       ThemeDark,
		Currency:    "BRL",
	}
}

func (ss *SettingsStore) load() {
	value, present, err := ss.store.ReadSlot(slotSettings)
	if err != nil {
		ss.store.log.Warn("slot read failed, using default settings",
			"slot", slotSettings, "error", err)
		ss.settings = DefaultSettings()
		return
	}
	if !present {
		ss.settings = DefaultSettings()
		if err := ss.persist(); err != nil {
			ss.store.log.Warn("settings seed persist failed", "error", err)
		}
		return
	}
	ss.settings = decodeRecord(ss.store.log, slotSettings, value, DefaultSettings())
	if ss.settings.Theme == "" {
		ss.settings.Theme = ThemeDark
	}
	if ss.settings.Currency == "" {
		ss.settings.Currency = "BRL"
	}
}

func (ss *SettingsStore) Refresh() {
	ss.load()
}

func (ss *SettingsStore) Get() CompanySettings {
	return ss.settings
}

type SettingsPatch struct {
	CompanyName *string
	Document    *string
	Email       *string
	Phone       *string
	AddressLine *string
	Logo        *string
	LegalTerms  *string
	Theme       *Theme
	Currency    *string
}

func (ss *SettingsStore) Update(patch SettingsPatch) (CompanySettings, error) {
	if patch.CompanyName != nil {
		ss.settings.CompanyName = *patch.CompanyName
	}
	if patch.Document != nil {
		ss.settings.Document = *patch.Document
	}
	if patch.Email != nil {
		ss.settings.Email = *patch.Email
	}
	if patch.Phone != nil {
		ss.settings.Phone = *patch.Phone
	}
	if patch.AddressLine != nil {
		ss.settings.AddressLine = *patch.AddressLine
	}
	if patch.Logo != nil {
		ss.settings.Logo = *patch.Logo
	}
	if patch.LegalTerms != nil {
		ss.settings.LegalTerms = *patch.LegalTerms
	}
	if patch.Theme != nil {
		ss.settings.Theme = *patch.Theme
	}
	if patch.Currency != nil {
		ss.settings.Currency = *patch.Currency
	}
	return ss.settings, ss.persist()
}

// Reset restores the defaults; settings has no delete.
func (ss *SettingsStore) Reset() (CompanySettings, error) {
	ss.settings = DefaultSettings()
	return ss.settings, ss.persist()
}

// Replace overwrites the record wholesale; used by backup restore.
func (ss *SettingsStore) Replace(settings CompanySettings) error {
	ss.settings = settings
	return ss.persist()
}

func (ss *SettingsStore) persist() error {
	value, err := encodeRecord(ss.settings)
	if err != nil {
		return err
	}
	return ss.store.WriteSlot(slotSettings, value)
}
