package entity

// Doctor represents a veterinarian in the operational store.
type Doctor struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName  string `gorm:"column:nombre;type:varchar(255);not null" json:"first_name"`
	LastName   string `gorm:"column:apellido;type:varchar(255);not null" json:"last_name"`
	NationalID string `gorm:"column:ci;type:varchar(255);uniqueIndex;not null" json:"national_id"`
	Phone      string `gorm:"column:telefono;type:varchar(255);not null" json:"phone"`
	Email      string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	PhotoURL   string `gorm:"column:fotourl;type:varchar(255)" json:"photo_url,omitempty"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// FullName composes the display name used in performance statistics
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
