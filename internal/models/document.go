package models

// Document is the metadata record for an uploaded project file. The file
// blob itself lives in external storage; only the reference is tracked
// here. UploadedBy is the ownership reference for deletion.
type Document struct {
	Base
	ProjectID    *uint  `gorm:"index" json:"project_id,omitempty"`
	DocumentType string `json:"document_type"`
	FileName     string `gorm:"not null" json:"file_name"`
	FilePath     string `gorm:"not null" json:"file_path"`
	FileSize     int64  `json:"file_size"`
	Description  string `json:"description"`
	UploadedBy   uint   `gorm:"not null" json:"uploaded_by"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Uploader *User    `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
