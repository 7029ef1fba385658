package models

// Settings is the singleton row holding household configuration. The two
// user display names are positional (user1, user2); the whole ledger
// depends on the domain being fixed at exactly two participants.
type Settings struct {
	Base
	User1Name string `gorm:"not null" json:"user1_name"`
	User2Name string `gorm:"not null" json:"user2_name"`
}

// UserNames returns the positional pair of user display names.
func (s *Settings) UserNames() (string, string) {
	return s.User1Name, s.User2Name
}
