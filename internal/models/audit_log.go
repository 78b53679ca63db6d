package models

// AuditAction is the fixed vocabulary of audited verbs.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionUpdate     AuditAction = "UPDATE"
	AuditActionDelete     AuditAction = "DELETE"
	AuditActionLogin      AuditAction = "LOGIN"
	AuditActionActivate   AuditAction = "ACTIVATE"
	AuditActionDeactivate AuditAction = "DEACTIVATE"
)

// AuditEntity is the fixed vocabulary of audited entity types.
type AuditEntity string

const (
	AuditEntityAuth                 AuditEntity = "AUTH"
	AuditEntityUser                 AuditEntity = "USER"
	AuditEntityProject              AuditEntity = "PROJECT"
	AuditEntityProjectTeam          AuditEntity = "PROJECT_TEAM"
	AuditEntityTask                 AuditEntity = "TASK"
	AuditEntityTaskActivity         AuditEntity = "TASK_ACTIVITY"
	AuditEntityMaterial             AuditEntity = "MATERIAL"
	AuditEntityMaterialUsage        AuditEntity = "MATERIAL_USAGE"
	AuditEntityMaterialRequisition  AuditEntity = "MATERIAL_REQUISITION"
	AuditEntityEquipment            AuditEntity = "EQUIPMENT"
	AuditEntityEquipmentBreakdown   AuditEntity = "EQUIPMENT_BREAKDOWN"
	AuditEntityEquipmentMaintenance AuditEntity = "EQUIPMENT_MAINTENANCE"
	AuditEntityAttendance           AuditEntity = "ATTENDANCE"
	AuditEntityLeaveRequest         AuditEntity = "LEAVE_REQUEST"
	AuditEntityDocument             AuditEntity = "DOCUMENT"
)

// AuditLog is an immutable record of who did what to which entity.
// Rows are append-only: the system never updates or deletes them.
type AuditLog struct {
	Base
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	Action     AuditAction `gorm:"not null" json:"action"`
	EntityType AuditEntity `gorm:"not null;index" json:"entity_type"`
	EntityID   uint        `gorm:"index" json:"entity_id"`
	Changes    string      `json:"changes,omitempty"`

	// Populated on the read path for display.
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
