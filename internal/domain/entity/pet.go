package entity

import (
	"time"
)

// Species is the lookup table for pet species.
type Species struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string `gorm:"column:descripcion;type:varchar(255);not null" json:"description"`

	// Relationships
	Pets []Pet `gorm:"foreignKey:SpeciesID" json:"pets,omitempty"`
}

func (Species) TableName() string {
	return "especie"
}

// Pet represents an animal registered at the clinic. Each pet belongs to
// one client and owns at most one vaccination booklet.
type Pet struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:nombre;type:varchar(255);not null" json:"name"`
	BirthDate time.Time `gorm:"column:fechanacimiento;type:date;not null" json:"birth_date"`
	Breed     string    `gorm:"column:raza;type:varchar(255);not null" json:"breed"`
	Sex       string    `gorm:"column:sexo;type:varchar(255);not null" json:"sex"`
	PhotoURL  string    `gorm:"column:fotourl;type:varchar(255)" json:"photo_url,omitempty"`
	ClientID  int       `gorm:"column:cliente_id;not null;index" json:"client_id"`
	SpeciesID int       `gorm:"column:especie_id;not null;index" json:"species_id"`

	// Relationships
	Client       Client              `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Species      Species             `gorm:"foreignKey:SpeciesID" json:"species,omitempty"`
	Appointments []Appointment       `gorm:"foreignKey:PetID" json:"appointments,omitempty"`
	Booklet      *VaccinationBooklet `gorm:"foreignKey:PetID" json:"booklet,omitempty"`
}

func (Pet) TableName() string {
	return "mascota"
}
