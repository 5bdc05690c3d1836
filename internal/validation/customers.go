// customers.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package validation

// CreateCustomerInput is the accepted shape for creating a customer.
// Optional enums default in ApplyDefaults, mirroring the form behavior.
type CreateCustomerInput struct {
	Name             string     `json:"name" validate:"required,max=255"`
	LastPatchDate    string     `json:"lastPatchDate" validate:"omitempty,datetime=2006-01-02"`
	LastPatchVersion string     `json:"lastPatchVersion" validate:"omitempty,max=100"`
	Temperament      string     `json:"temperament" validate:"omitempty,oneof=happy satisfied neutral concerned frustrated"`
	Topology         string     `json:"topology" validate:"omitempty,oneof=dev qa stage prod"`
	DumbledoreStage  int        `json:"dumbledoreStage" validate:"omitempty,min=1,max=9"`
	PatchFrequency   string     `json:"patchFrequency" validate:"omitempty,oneof=monthly quarterly"`
	Workload         string     `json:"workload" validate:"omitempty,max=255"`
	CloudManager     string     `json:"cloudManager" validate:"omitempty,oneof=none planned active"`
	Products         []string   `json:"products" validate:"omitempty,dive,required,max=100"`
	MscURL           string     `json:"mscUrl" validate:"omitempty,url"`
	RunbookURL       string     `json:"runbookUrl" validate:"omitempty,url"`
	SnowURL          string     `json:"snowUrl" validate:"omitempty,url"`
}

// ApplyDefaults fills the enum defaults for fields the form omitted.
func (in *CreateCustomerInput) ApplyDefaults() {
	if in.Temperament == "" {
		in.Temperament = "neutral"
	}
	if in.Topology == "" {
		in.Topology = "dev"
	}
	if in.DumbledoreStage == 0 {
		in.DumbledoreStage = 1
	}
	if in.PatchFrequency == "" {
		in.PatchFrequency = "monthly"
	}
}

// UpdateCustomerInput is the accepted shape for a customer update. The edit
// form always posts the full record, so the enums are required here.
type UpdateCustomerInput struct {
	Name             string   `json:"name" validate:"required,max=255"`
	LastPatchDate    string   `json:"lastPatchDate" validate:"omitempty,datetime=2006-01-02"`
	LastPatchVersion string   `json:"lastPatchVersion" validate:"omitempty,max=100"`
	Temperament      string   `json:"temperament" validate:"required,oneof=happy satisfied neutral concerned frustrated"`
	Topology         string   `json:"topology" validate:"required,oneof=dev qa stage prod"`
	DumbledoreStage  int      `json:"dumbledoreStage" validate:"required,min=1,max=9"`
	PatchFrequency   string   `json:"patchFrequency" validate:"required,oneof=monthly quarterly"`
	Workload         string   `json:"workload" validate:"omitempty,max=255"`
	CloudManager     string   `json:"cloudManager" validate:"omitempty,oneof=none planned active"`
	Products         []string `json:"products" validate:"omitempty,dive,required,max=100"`
	MscURL           string   `json:"mscUrl" validate:"omitempty,url"`
	RunbookURL       string   `json:"runbookUrl" validate:"omitempty,url"`
	SnowURL          string   `json:"snowUrl" validate:"omitempty,url"`
}

// AddNoteInput is the accepted shape for attaching a note to a customer.
// The note body is raw editor HTML.
type AddNoteInput struct {
	Note string `json:"note" validate:"required,max=5000"`
}

// UpdateNoteInput is the accepted shape for editing a note body.
type UpdateNoteInput struct {
	Note string `json:"note" validate:"required,max=5000"`
}

// WeeklyReportInput selects the reporting week by its ending date.
type WeeklyReportInput struct {
	WeekEndingDate string `json:"weekEndingDate" validate:"required,datetime=2006-01-02"`
}
