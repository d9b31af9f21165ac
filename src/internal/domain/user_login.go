package domain

type UserLogin struct {
	Username     string
	PasswordHash string
	Role         Role
	PartyID      string
}
