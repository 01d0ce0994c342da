package domain

import "time"

// EntityType names the record a document is attached to.
type EntityType string

const (
	EntityLead    EntityType = "lead"
	EntityBooking EntityType = "booking"
	EntityPlot    EntityType = "plot"
	EntityProject EntityType = "project"
)

// DocType classifies an uploaded document.
type DocType string

const (
	DocKYC       DocType = "KYC"
	DocPAN       DocType = "PAN"
	DocAadhar    DocType = "Aadhar"
	DocAgreement DocType = "Agreement"
	DocRegistry  DocType = "Registry"
	DocLayout    DocType = "Layout"
)

// DocStatus is the verification state of a document.
type DocStatus string

const (
	DocStatusPending  DocStatus = "pending"
	DocStatusVerified DocStatus = "verified"
	DocStatusRejected DocStatus = "rejected"
)

// Document is file metadata attached to a lead, booking, plot or project.
// The file itself lives elsewhere; only its URL is stored.
type Document struct {
	ID         string     `json:"doc_id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	DocType    DocType    `json:"doc_type"`
	URL        string     `json:"url"`
	UploadedBy string     `json:"uploaded_by"`
	VerifiedBy *string    `json:"verified_by"`
	VerifiedAt *time.Time `json:"verified_at"`
	Status     DocStatus  `json:"status"`
	Remarks    string     `json:"remarks"`
	CreatedAt  time.Time  `json:"created_at"`
}
