package domain

// User is a directory entry with at most one Address. The address row is
// owned by its user: it is written and removed only through user
// operations, and the addresses.user_id foreign key cascades on delete.
type User struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Firstname string   `gorm:"size:255;not null;column:firstname" json:"firstname"`
	Lastname  string   `gorm:"size:255;not null;column:lastname" json:"lastname"`
	Birthdate string   `gorm:"size:255;not null;column:birthdate" json:"birthdate"`
	Address   *Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"address"`
}

func (User) TableName() string { return "users" }

// Address is never returned partially populated: a user carries either a
// full address or a null one.
type Address struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID     int64  `gorm:"not null;index;column:user_id" json:"-"`
	Street     string `gorm:"size:255;not null;column:street" json:"street"`
	City       string `gorm:"size:255;not null;column:city" json:"city"`
	Province   string `gorm:"size:255;not null;column:province" json:"province"`
	PostalCode string `gorm:"size:10;not null;column:postal_code" json:"postal_code"`
}

func (Address) TableName() string { return "addresses" }

// UserInput is the submitted create/update payload: the seven validated
// fields, flat, exactly as the form posts them.
type UserInput struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Birthdate  string `json:"birthdate"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

// ToUser builds the aggregate a repository write expects.
func (in UserInput) ToUser() *User {
	return &User{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Birthdate: in.Birthdate,
		Address: &Address{
			Street:     in.Street,
			City:       in.City,
			Province:   in.Province,
			PostalCode: in.PostalCode,
		},
	}
}
