package entity

import (
	"time"
)

// Diagnosis is recorded against an appointment and serves as a count
// source for clinical aggregates.
type Diagnosis struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Description   string    `gorm:"column:descripcion;type:varchar(255);not null" json:"description"`
	RecordedAt    time.Time `gorm:"column:fecharegistro;not null" json:"recorded_at"`
	Observations  string    `gorm:"column:observaciones;type:varchar(255);not null" json:"observations"`
	AppointmentID int       `gorm:"column:cita_id;not null;index" json:"appointment_id"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Treatments  []Treatment `gorm:"foreignKey:DiagnosisID" json:"treatments,omitempty"`
}

func (Diagnosis) TableName() string {
	return "diagnostico"
}

// Treatment is prescribed for a diagnosis.
type Treatment struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"column:nombre;type:varchar(255);not null" json:"name"`
	Description  string `gorm:"column:descripcion;type:varchar(255);not null" json:"description"`
	Observations string `gorm:"column:observaciones;type:varchar(255);not null" json:"observations"`
	DiagnosisID  int    `gorm:"column:diagnostico_id;not null;index" json:"diagnosis_id"`

	// Relationships
	Diagnosis Diagnosis `gorm:"foreignKey:DiagnosisID" json:"diagnosis,omitempty"`
}

func (Treatment) TableName() string {
	return "tratamiento"
}
