package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted text format for birth dates
const DateLayout = "2006-01-02"

// AdultAge is the minimum age for a person to be marked active
const AdultAge = 18

// Person represents a person imported from a spreadsheet
type Person struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	BirthDate time.Time           `json:"birth_date"`
	Active    bool                `json:"active"`
	Fee       decimal.NullDecimal `json:"fee"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewPerson creates a new Person with a generated UUID.
// Active and Fee are left for ApplyRules.
func NewPerson(name, email string, birthDate time.Time) *Person {
	return &Person{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		BirthDate: dateOnly(birthDate),
	}
}

// ApplyRules sets Active and Fee from the person's age on the given day
func (p *Person) ApplyRules(now time.Time) {
	age := Age(p.BirthDate, now)
	p.Active = age >= AdultAge
	if p.Active {
		p.Fee = decimal.NewNullDecimal(FeeForAge(age))
	} else {
		p.Fee = decimal.NullDecimal{}
	}
}

// Age returns the exact calendar age on the day of now
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

var (
	feeYoung  = decimal.RequireFromString("100.00")
	feeAdult  = decimal.RequireFromString("150.00")
	feeSenior = decimal.RequireFromString("200.00")
)

// FeeForAge returns the fee tier for an active person
func FeeForAge(age int) decimal.Decimal {
	switch {
	case age < 21:
		return feeYoung
	case age <= 59:
		return feeAdult
	default:
		return feeSenior
	}
}

// FormatFee renders a fee as "R$ 0.00", or an empty string when null
func FormatFee(fee decimal.NullDecimal) string {
	if !fee.Valid {
		return ""
	}
	return "R$ " + fee.Decimal.StringFixed(2)
}

// PersonResult is the JSON shape returned for each active imported row
type PersonResult struct {
	Name      string `json:"nome"`
	Email     string `json:"e-mail"`
	BirthDate string `json:"data de nascimento"`
	Active    bool   `json:"ativo"`
	Fee       string `json:"valor"`
}

// ToResult shapes the person for the import response
func (p *Person) ToResult() PersonResult {
	return PersonResult{
		Name:      p.Name,
		Email:     p.Email,
		BirthDate: p.BirthDate.Format(DateLayout),
		Active:    p.Active,
		Fee:       FormatFee(p.Fee),
	}
}

// PersonFilter narrows person listings
type PersonFilter struct {
	Active *bool
	Search string
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
