package entity

// Client represents a pet owner in the operational store.
type Client struct {
	ID         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName  string `gorm:"column:nombre;type:varchar(255);not null" json:"first_name"`
	LastName   string `gorm:"column:apellido;type:varchar(255);not null" json:"last_name"`
	NationalID string `gorm:"column:ci;type:varchar(255);uniqueIndex;not null" json:"national_id"`
	Phone      string `gorm:"column:telefono;type:varchar(255);not null" json:"phone"`
	PhotoURL   string `gorm:"column:fotourl;type:varchar(255)" json:"photo_url,omitempty"`

	// Relationships
	Pets []Pet `gorm:"foreignKey:ClientID" json:"pets,omitempty"`
}

func (Client) TableName() string {
	return "cliente"
}

// FullName composes the owner display name used in vaccination alerts
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
