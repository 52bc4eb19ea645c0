package models

type Customer struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	MobilePhone string `json:"mobile_phone"`
	Address     string `json:"address"`
}

// Validate requires every contact field to be present.
func (c *Customer) Validate() error {
	switch {
	case c.Name == "":
		return NewValidationError("name")
	case c.Email == "":
		return NewValidationError("email")
	case c.MobilePhone == "":
		return NewValidationError("mobile_phone")
	case c.Address == "":
		return NewValidationError("address")
	}
	return nil
}

func (c *Customer) Fields() map[string]any {
	return map[string]any{
		"name":         c.Name,
		"email":        c.Email,
		"mobile_phone": c.MobilePhone,
		"address":      c.Address,
	}
}
