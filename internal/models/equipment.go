package models

import "time"

// EquipmentStatus represents the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentStatusOperational EquipmentStatus = "operational"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusBroken      EquipmentStatus = "broken"
	EquipmentStatusRetired     EquipmentStatus = "retired"
)

// Equipment represents a machine or tool tracked on a project.
type Equipment struct {
	Base
	Name                string          `gorm:"not null" json:"name"`
	Type                string          `json:"type"`
	SerialNumber        string          `json:"serial_number"`
	ProjectID           *uint           `gorm:"index" json:"project_id,omitempty"`
	Status              EquipmentStatus `gorm:"not null;default:'operational'" json:"status"`
	LastMaintenanceDate *time.Time      `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate *time.Time      `json:"next_maintenance_date,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// EquipmentBreakdown records a reported failure.
type EquipmentBreakdown struct {
	Base
	EquipmentID         uint       `gorm:"not null;index" json:"equipment_id"`
	ReportedBy          uint       `gorm:"not null" json:"reported_by"`
	Description         string     `json:"description"`
	Severity            string     `json:"severity"`
	EstimatedRepairDate *time.Time `json:"estimated_repair_date,omitempty"`
	Status              string     `gorm:"not null;default:'open'" json:"status"`

	Reporter *User `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
}

// EquipmentMaintenance records a completed maintenance job.
type EquipmentMaintenance struct {
	Base
	EquipmentID         uint       `gorm:"not null;index" json:"equipment_id"`
	PerformedBy         uint       `gorm:"not null" json:"performed_by"`
	MaintenanceType     string     `json:"maintenance_type"`
	Description         string     `json:"description"`
	Cost                float64    `json:"cost"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date,omitempty"`

	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}
