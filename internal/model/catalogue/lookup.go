package catalogue

type Genre struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:80;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

type Developer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:120;not null;uniqueIndex" json:"name"`
}

type Platform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null;uniqueIndex" json:"name"`
}
