package entity

import (
	"time"
)

// Vaccine is the lookup table for administered vaccines.
type Vaccine struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string `gorm:"column:descripcion;type:varchar(255);not null" json:"description"`

	// Relationships
	Entries []VaccinationEntry `gorm:"foreignKey:VaccineID" json:"entries,omitempty"`
}

func (Vaccine) TableName() string {
	return "vacuna"
}

// VaccinationBooklet is the vaccination record aggregate owned by exactly
// one pet.
type VaccinationBooklet struct {
	ID       int       `gorm:"primaryKey;autoIncrement" json:"id"`
	IssuedAt time.Time `gorm:"column:fechaemision;not null" json:"issued_at"`
	PetID    int       `gorm:"column:mascota_id;not null;uniqueIndex" json:"pet_id"`

	// Relationships
	Pet     Pet                `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Entries []VaccinationEntry `gorm:"foreignKey:BookletID" json:"entries,omitempty"`
}

func (VaccinationBooklet) TableName() string {
	return "carnet_vacunacion"
}

// VaccinationEntry is one administered dose inside a booklet. NextDueDate
// is NULL when no future dose is scheduled; such entries never produce
// alerts.
type VaccinationEntry struct {
	ID             int        `gorm:"primaryKey;autoIncrement" json:"id"`
	AdministeredAt time.Time  `gorm:"column:fechavacunacion;type:date;not null" json:"administered_at"`
	NextDueDate    *time.Time `gorm:"column:proximavacunacion;type:date;index" json:"next_due_date,omitempty"`
	BookletID      int        `gorm:"column:carnet_vacunacion_id;not null;index" json:"booklet_id"`
	VaccineID      int        `gorm:"column:vacuna_id;not null;index" json:"vaccine_id"`

	// Relationships
	Booklet VaccinationBooklet `gorm:"foreignKey:BookletID" json:"booklet,omitempty"`
	Vaccine Vaccine            `gorm:"foreignKey:VaccineID" json:"vaccine,omitempty"`
}

func (VaccinationEntry) TableName() string {
	return "detalle_vacunacion"
}
