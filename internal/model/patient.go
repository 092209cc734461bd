package model

// Patient is keyed by PESEL (national person identifier). Email is optional;
// an empty string means the patient opted out of e-mail contact.
type Patient struct {
	PESEL     string `db:"pesel" json:"pesel"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email,omitempty"`
}
