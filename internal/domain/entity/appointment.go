package entity

import (
	"time"
)

// AppointmentStatus mirrors the integer status codes stored in the
// operational database.
type AppointmentStatus int

const (
	AppointmentStatusPending   AppointmentStatus = 1
	AppointmentStatusConfirmed AppointmentStatus = 2
	AppointmentStatusCompleted AppointmentStatus = 3
	AppointmentStatusCancelled AppointmentStatus = 4
)

// Appointment represents a scheduled visit in the operational store.
// The analytics gateway only ever reads this table.
type Appointment struct {
	ID          int               `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time         `gorm:"column:fechacreacion;not null" json:"created_at"`
	Reason      string            `gorm:"column:motivo;type:varchar(255);not null" json:"reason"`
	ScheduledAt time.Time         `gorm:"column:fechareserva;not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"column:estado;not null;index" json:"status"`
	DoctorID    int               `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	PetID       int               `gorm:"column:mascota_id;not null;index" json:"pet_id"`

	// Relationships
	Doctor    Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Pet       Pet         `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Diagnoses []Diagnosis `gorm:"foreignKey:AppointmentID" json:"diagnoses,omitempty"`
}

func (Appointment) TableName() string {
	return "cita"
}

// IsCompleted checks if the appointment was carried out
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
