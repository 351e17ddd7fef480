package store

import (
	"math"
	"time"
)

// Slot names are the stable contract with durable storage. Changing one
// orphans previously written data, so treat additions as append-only.
const (
	slotClients        = "clients"
	slotActivityLogs   = "activity_logs"
	slotMeasurements   = "measurements"
	slotPhotoTrackings = "photo_trackings"
	slotPlannings      = "plannings"
	slotReminders      = "reminders"
	slotBudgets        = "budgets"
	slotInputs         = "inputs"
	slotCompositions   = "compositions"
	slotSettings       = "settings"
)

// --- Enums ---

type ClientType string

const (
	ClientPrivate    ClientType = "PRIVATE"
	ClientPublic     ClientType = "PUBLIC"
	ClientGovernment ClientType = "GOVERNMENT"
)

func (c ClientType) Valid() bool {
	switch c {
	case ClientPrivate, ClientPublic, ClientGovernment:
		return true
	}
	return false
}

type Weather string

const (
	WeatherSunny  Weather = "SUNNY"
	WeatherCloudy Weather = "CLOUDY"
	WeatherRainy  Weather = "RAINY"
	WeatherStorm  Weather = "STORM"
)

func (w Weather) Valid() bool {
	switch w {
	case WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStorm:
		return true
	}
	return false
}

type DayStatus string

const (
	DayProductive   DayStatus = "PRODUCTIVE"
	DayNormal       DayStatus = "NORMAL"
	DayUnproductive DayStatus = "UNPRODUCTIVE"
)

func (d DayStatus) Valid() bool {
	switch d {
	case DayProductive, DayNormal, DayUnproductive:
		return true
	}
	return false
}

type MeasurementStatus string

const (
	MeasurementDraft     MeasurementStatus = "DRAFT"
	MeasurementSubmitted MeasurementStatus = "SUBMITTED"
	MeasurementApproved  MeasurementStatus = "APPROVED"
	MeasurementPaid      MeasurementStatus = "PAID"
)

func (m MeasurementStatus) Valid() bool {
	switch m {
	case MeasurementDraft, MeasurementSubmitted, MeasurementApproved, MeasurementPaid:
		return true
	}
	return false
}

type PlanningStatus string

const (
	PlanningDraft     PlanningStatus = "DRAFT"
	PlanningActive    PlanningStatus = "ACTIVE"
	PlanningOnHold    PlanningStatus = "ON_HOLD"
	PlanningCompleted PlanningStatus = "COMPLETED"
)

func (p PlanningStatus) Valid() bool {
	switch p {
	case PlanningDraft, PlanningActive, PlanningOnHold, PlanningCompleted:
		return true
	}
	return false
}

type PhotoCategory string

const (
	PhotoProgress    PhotoCategory = "PROGRESS"
	PhotoIssue       PhotoCategory = "ISSUE"
	PhotoBeforeAfter PhotoCategory = "BEFORE_AFTER"
	PhotoTeam        PhotoCategory = "TEAM"
	PhotoMaterial    PhotoCategory = "MATERIAL"
	PhotoFinishing   PhotoCategory = "FINISHING"
)

func (p PhotoCategory) Valid() bool {
	switch p {
	case PhotoProgress, PhotoIssue, PhotoBeforeAfter, PhotoTeam, PhotoMaterial, PhotoFinishing:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "DRAFT"
	BudgetSent     BudgetStatus = "SENT"
	BudgetApproved BudgetStatus = "APPROVED"
	BudgetRejected BudgetStatus = "REJECTED"
)

func (b BudgetStatus) Valid() bool {
	switch b {
	case BudgetDraft, BudgetSent, BudgetApproved, BudgetRejected:
		return true
	}
	return false
}

type InputCategory string

const (
	InputMaterial  InputCategory = "MATERIAL"
	InputLabor     InputCategory = "LABOR"
	InputEquipment InputCategory = "EQUIPMENT"
)

func (i InputCategory) Valid() bool {
	switch i {
	case InputMaterial, InputLabor, InputEquipment:
		return true
	}
	return false
}

type Theme string

const (
	ThemeDark  Theme = "DARK"
	ThemeLight Theme = "LIGHT"
)

// --- Entities ---

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type Client struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Company    string     `json:"company,omitempty"`
	Document   string     `json:"document,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	ClientType ClientType `json:"clientType"`
	Address    *Address   `json:"address,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type Activity struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
}

type ActivityLog struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	ProjectName string     `json:"projectName"`
	Weather     Weather    `json:"weather"`
	TeamCount   int        `json:"teamCount"`
	Activities  []Activity `json:"activities"`
	Materials   []string   `json:"materials"`
	Equipment   []string   `json:"equipment"`
	Status      DayStatus  `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type MeasurementItem struct {
	ServiceCode      string  `json:"serviceCode"`
	ServiceName      string  `json:"serviceName"`
	Unit             string  `json:"unit"`
	PreviousQuantity float64 `json:"previousQuantity"`
	CurrentQuantity  float64 `json:"currentQuantity"`
	UnitPrice        float64 `json:"unitPrice"`
	TotalValue       float64 `json:"totalValue"`
}

type Measurement struct {
	ID                  string            `json:"id"`
	MeasurementNumber   int               `json:"measurementNumber"`
	ProjectName         string            `json:"projectName"`
	ClientID            string            `json:"clientId,omitempty"`
	ReferenceDate       time.Time         `json:"referenceDate"`
	Status              MeasurementStatus `json:"status"`
	Items               []MeasurementItem `json:"items"`
	Subtotal            float64           `json:"subtotal"`
	RetentionPercentage float64           `json:"retentionPercentage"`
	RetentionAmount     float64           `json:"retentionAmount"`
	NetValue            float64           `json:"netValue"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// recompute derives every money field from quantities and prices. Runs on
// every create and update so a stored record never carries stale totals.
func (m *Measurement) recompute() {
	subtotal := 0.0
	for i := range m.Items {
		m.Items[i].TotalValue = round2(m.Items[i].CurrentQuantity * m.Items[i].UnitPrice)
		subtotal += m.Items[i].TotalValue
	}
	m.Subtotal = round2(subtotal)
	m.RetentionAmount = round2(m.Subtotal * m.RetentionPercentage / 100)
	m.NetValue = round2(m.Subtotal - m.RetentionAmount)
}

type PlanningTask struct {
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Progress     float64   `json:"progress"`
	Dependencies []string  `json:"dependencies,omitempty"`
	Assignee     string    `json:"assignee,omitempty"`
}

type Planning struct {
	ID              string         `json:"id"`
	ProjectName     string         `json:"projectName"`
	StartDate       time.Time      `json:"startDate"`
	EndDate         time.Time      `json:"endDate"`
	Status          PlanningStatus `json:"status"`
	TotalBudget     float64        `json:"totalBudget"`
	Tasks           []PlanningTask `json:"tasks"`
	OverallProgress int            `json:"overallProgress"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// recompute sets OverallProgress to the rounded mean of task progress.
// With no tasks the manually supplied value stands.
func (p *Planning) recompute() {
	if len(p.Tasks) == 0 {
		return
	}
	sum := 0.0
	for _, t := range p.Tasks {
		sum += t.Progress
	}
	p.OverallProgress = int(math.Round(sum / float64(len(p.Tasks))))
}

type Photo struct {
	ID         string    `json:"id"`
	Data       string    `json:"data,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MaxPhotosPerRecord caps inline image payloads per tracking record.
const MaxPhotosPerRecord = 5

type PhotoTracking struct {
	ID          string        `json:"id"`
	ProjectName string        `json:"projectName"`
	Category    PhotoCategory `json:"category"`
	Photos      []Photo       `json:"photos"`
	PhotoCount  int           `json:"photoCount"`
	Tags        []string      `json:"tags"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Reminder struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DueDate   time.Time `json:"dueDate"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type BudgetItem struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalValue  float64 `json:"totalValue"`
}

type Budget struct {
	ID            string       `json:"id"`
	ClientID      string       `json:"clientId,omitempty"`
	ProjectName   string       `json:"projectName"`
	Status        BudgetStatus `json:"status"`
	Items         []BudgetItem `json:"items"`
	BDIPercentage float64      `json:"bdiPercentage"`
	Subtotal      float64      `json:"subtotal"`
	TotalValue    float64      `json:"totalValue"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// recompute derives item totals, the subtotal and the BDI-loaded total.
func (b *Budget) recompute() {
	subtotal := 0.0
	for i := range b.Items {
		b.Items[i].TotalValue = round2(b.Items[i].Quantity * b.Items[i].UnitPrice)
		subtotal += b.Items[i].TotalValue
	}
	b.Subtotal = round2(subtotal)
	b.TotalValue = round2(b.Subtotal * (1 + b.BDIPercentage/100))
}

type Input struct {
	ID        string        `json:"id"`
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Unit      string        `json:"unit"`
	UnitPrice float64       `json:"unitPrice"`
	Category  InputCategory `json:"category"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type CompositionItem struct {
	InputID     string  `json:"inputId"`
	InputName   string  `json:"inputName"`
	Unit        string  `json:"unit"`
	Coefficient float64 `json:"coefficient"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalCost   float64 `json:"totalCost"`
}

type Composition struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	Name      string            `json:"name"`
	Unit      string            `json:"unit"`
	Items     []CompositionItem `json:"items"`
	UnitCost  float64           `json:"unitCost"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// recompute derives per-item costs and the composition unit cost.
func (c *Composition) recompute() {
	cost := 0.0
	for i := range c.Items {
		c.Items[i].TotalCost = round2(c.Items[i].Coefficient * c.Items[i].UnitPrice)
		cost += c.Items[i].TotalCost
	}
	c.UnitCost = round2(cost)
}

type CompanySettings struct {
	CompanyName string `json:"companyName"`
	Document    string `json:"document,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AddressLine string `json:"addressLine,omitempty"`
	Logo        string `json:"logo,omitempty"`
	LegalTerms  string `json:"legalTerms,omitempty"`
	Theme       Theme  `json:"theme"`
	Currency    string `json:"currency"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
