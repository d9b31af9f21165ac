package domain

import "time"

type Customer struct {
	CustomerID  string
	Name        string
	DOB         *time.Time
	PAN         string
	Address     string
	PhoneNumber string
}

const seniorCitizenAge = 60

// IsSeniorCitizen reports whether the customer is 60 or older at the given
// reference time. Customers without a recorded date of birth never qualify.
func (c Customer) IsSeniorCitizen(now time.Time) bool {
	if c.DOB == nil {
		return false
	}
	cutoff := c.DOB.AddDate(seniorCitizenAge, 0, 0)
	return !now.Before(cutoff)
}
