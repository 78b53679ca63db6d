package models

import "time"

// RequisitionStatus represents the review state of a material requisition.
type RequisitionStatus string

const (
	RequisitionStatusPending  RequisitionStatus = "pending"
	RequisitionStatusApproved RequisitionStatus = "approved"
	RequisitionStatusRejected RequisitionStatus = "rejected"
)

// Material represents stock of a construction material. CurrentBalance is
// the remaining on-site quantity; usage decrements it, approved
// requisitions restock it.
type Material struct {
	Base
	Name           string  `gorm:"not null" json:"name"`
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	Quantity       float64 `gorm:"not null;default:0" json:"quantity"`
	CurrentBalance float64 `gorm:"not null;default:0" json:"current_balance"`
	ProjectID      *uint   `gorm:"index" json:"project_id,omitempty"`
	UnitPrice      float64 `json:"unit_price"`
	Supplier       string  `json:"supplier"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// MaterialUsage records a withdrawal from a material's balance.
type MaterialUsage struct {
	Base
	MaterialID   uint    `gorm:"not null;index" json:"material_id"`
	UserID       uint    `gorm:"not null" json:"user_id"`
	QuantityUsed float64 `gorm:"not null" json:"quantity_used"`
	Notes        string  `json:"notes"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// MaterialRequisition is a request for more stock, reviewed by a manager.
type MaterialRequisition struct {
	Base
	MaterialID        uint              `gorm:"not null;index" json:"material_id"`
	ProjectID         *uint             `gorm:"index" json:"project_id,omitempty"`
	RequestedBy       uint              `gorm:"not null" json:"requested_by"`
	QuantityRequested float64           `gorm:"not null" json:"quantity_requested"`
	ApprovedQuantity  *float64          `json:"approved_quantity,omitempty"`
	Status            RequisitionStatus `gorm:"not null;default:'pending'" json:"status"`
	ApprovedBy        *uint             `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time        `json:"approved_at,omitempty"`
	Notes             string            `json:"notes"`

	Material  *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Requester *User     `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
}
