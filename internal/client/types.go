package client

// Wire shapes mirrored from the server's JSON surface.

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type User struct {
	ID        int64    `json:"id"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Birthdate string   `json:"birthdate"`
	Address   *Address `json:"address"`
}

type UserInput struct {
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Birthdate  string `json:"birthdate"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type ListResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type messageResponse struct {
	Message string `json:"message"`
}
