package domain

// UserDetails carries customer contact and delivery address fields. The
// (orderId, mobile) pair doubles as the secret for customer order lookup.
type UserDetails struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	HouseNo  string `json:"houseNo"`
	Address  string `json:"address"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	Mandal   string `json:"mandal"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
	State    string `json:"state"`
}

type Language string

const (
	LanguageEN Language = "EN"
	LanguageTE Language = "TE"
)
