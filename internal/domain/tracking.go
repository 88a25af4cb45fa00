package domain

import (
	"strconv"
	"time"
)

// TrackingStatus mirrors the backend's integer GPS tracker state. Note the
// backend uses 1/2 here, not the 0/1 pair used elsewhere.
type TrackingStatus int

const (
	TrackingActive   TrackingStatus = 1
	TrackingInactive TrackingStatus = 2
)

func (s TrackingStatus) String() string {
	switch s {
	case TrackingActive:
		return "Active"
	case TrackingInactive:
		return "Inactive"
	}
	return strconv.Itoa(int(s))
}

// TrackingRecord is one GPS position report from a professional's vehicle.
type TrackingRecord struct {
	ID               string         `json:"id"`
	ProfessionalID   string         `json:"professionalId"`
	ProfessionalName string         `json:"professionalName"`
	CompanyName      string         `json:"companyName"`
	Vehicle          string         `json:"vehicle"`
	Location         GeoPoint       `json:"location"`
	Speed            float64        `json:"speed"`
	Battery          float64        `json:"battery"`
	Status           TrackingStatus `json:"status"`
	Timestamp        time.Time      `json:"timestamp"`
	Notes            string         `json:"notes,omitempty"`
}
