// package models defines the data model for parties and their attendees
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Party is an event owning a collection of attendees.
type Party struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// PartyInput is the body of create and update party requests.
type PartyInput struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// NewPartyInput trims name and stamps the input with now.
func NewPartyInput(name string, now time.Time) PartyInput {
	return PartyInput{Name: strings.TrimSpace(name), Date: now}
}

// Validate rejects blank names.
func (p PartyInput) Validate() error {
	if Blank(p.Name) {
		return fmt.Errorf("party name is required")
	}
	return nil
}

// AttendeeFields holds everything about an attendee except its identifier.
//
// It is the payload of create requests.
type AttendeeFields struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Present  bool   `json:"present"`
	Invited  bool   `json:"invited"`
	Host     bool   `json:"host"`
	PartyID  int    `json:"partyId"`
}

// Validate checks the constraints the collection service relies on.
func (f AttendeeFields) Validate() error {
	if f.PartyID <= 0 {
		return fmt.Errorf("partyId is required")
	}
	if f.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	return nil
}

// Attendee is a persisted person record.
type Attendee struct {
	ID int `json:"id"`
	AttendeeFields
}

// ParseAge reads an age typed by a user. Anything that is not a non-negative integer counts as zero.
func ParseAge(s string) int {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 0 {
		return 0
	}
	return age
}

// Blank reports whether s is empty or whitespace only.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
