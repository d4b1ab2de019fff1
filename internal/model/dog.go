package model

// Dog is an independent entity with no relation to User.
type Dog struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement;index" json:"id"`
	Name  string `gorm:"column:name;index" json:"name"`
	Age   int    `gorm:"column:age;index" json:"age"`
	Breed string `gorm:"column:breed;index" json:"breed"`
}

// TableName pins the table name used by the ORM.
func (Dog) TableName() string {
	return "dogs"
}
