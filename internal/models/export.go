package models

import "time"

// GuestList is one party with its attendees, the unit of every export.
type GuestList struct {
	Party     Party      `json:"party"`
	Attendees []Attendee `json:"attendees"`
}

// Present counts attendees marked present.
func (g GuestList) Present() int {
	n := 0
	for _, a := range g.Attendees {
		if a.Present {
			n++
		}
	}
	return n
}

// Invited counts attendees marked invited.
func (g GuestList) Invited() int {
	n := 0
	for _, a := range g.Attendees {
		if a.Invited {
			n++
		}
	}
	return n
}

// Hosts returns the names of the hosts in list order.
func (g GuestList) Hosts() []string {
	var hosts []string
	for _, a := range g.Attendees {
		if a.Host {
			hosts = append(hosts, a.Name)
		}
	}
	return hosts
}

// ExportManifest summarizes a bulk export run.
type ExportManifest struct {
	ExportedAt time.Time       `json:"exportedAt"`
	Format     string          `json:"format"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Parties    []ManifestEntry `json:"parties"`
}

// ManifestEntry is the outcome for one party of a bulk export.
type ManifestEntry struct {
	PartyID   int      `json:"partyId"`
	Name      string   `json:"name"`
	Attendees int      `json:"attendees"`
	Files     []string `json:"files,omitempty"`
	Error     string   `json:"error,omitempty"`
}
