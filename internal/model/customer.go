package model

// Customer is a restaurant patron. ID is zero until the customer is saved.
type Customer struct {
    ID        int    `db:"id" json:"id"`
    FirstName string `db:"first_name" json:"first_name"`
    LastName  string `db:"last_name" json:"last_name"`
    Phone     string `db:"phone" json:"phone"`
    Notes     string `db:"notes" json:"notes"`
}

// IsNew reports whether the customer has not been persisted yet.
func (c *Customer) IsNew() bool {
    return c.ID == 0
}

// FullName joins first and last name with a single space.
func (c *Customer) FullName() string {
    return c.FirstName + " " + c.LastName
}

// TopCustomer is a customer together with how many reservations they hold.
type TopCustomer struct {
    Customer         Customer `json:"customer"`
    ReservationCount int      `json:"reservation_count"`
}
