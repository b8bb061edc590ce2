package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Stylist is a salon employee that can be booked
type Stylist struct {
	ID              int64
	Name            string
	Phone           string
	Email           string
	Specialties     []string
	ExperienceYears int
	Rating          float64 // 0..5
	IsAvailable     bool
	ImageURL        *string
}

// IsSentinel returns true for the persisted "any stylist" placeholder rows
func (s *Stylist) IsSentinel() bool {
	return IsSentinelStylistName(s.Name)
}

// IsSentinelStylistName matches either sentinel name variant, case-insensitively
func IsSentinelStylistName(name string) bool {
	for _, sentinel := range SentinelStylistNames {
		if strings.EqualFold(strings.TrimSpace(name), sentinel) {
			return true
		}
	}
	return false
}

const anyStylistToken = "any"

// StylistChoice is either a specific stylist or "any available".
// The zero value is not a valid choice.
type StylistChoice struct {
	id  int64
	any bool
}

// SpecificStylist selects a concrete stylist by id
func SpecificStylist(id int64) StylistChoice {
	return StylistChoice{id: id}
}

// AnyStylist selects whichever stylist is available
func AnyStylist() StylistChoice {
	return StylistChoice{any: true}
}

// ParseStylistChoice accepts "any" or a positive numeric id
func ParseStylistChoice(s string) (StylistChoice, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, anyStylistToken) {
		return AnyStylist(), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return StylistChoice{}, ErrInvalidStylistChoice
	}
	return SpecificStylist(id), nil
}

func (c StylistChoice) IsAny() bool {
	return c.any
}

// ID returns the stylist id for a specific choice
func (c StylistChoice) ID() (int64, bool) {
	if c.any || c.id <= 0 {
		return 0, false
	}
	return c.id, true
}

// IsValid returns false for the zero value
func (c StylistChoice) IsValid() bool {
	return c.any || c.id > 0
}

func (c StylistChoice) Equal(other StylistChoice) bool {
	return c.any == other.any && c.id == other.id
}

func (c StylistChoice) String() string {
	if c.any {
		return anyStylistToken
	}
	return strconv.FormatInt(c.id, 10)
}

// MarshalJSON encodes "any" as a string and a specific choice as a number
func (c StylistChoice) MarshalJSON() ([]byte, error) {
	if c.any {
		return json.Marshal(anyStylistToken)
	}
	return json.Marshal(c.id)
}

func (c *StylistChoice) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := ParseStylistChoice(v)
		if err != nil {
			return err
		}
		*c = parsed
	case float64:
		parsed, err := ParseStylistChoice(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return err
		}
		*c = parsed
	default:
		return ErrInvalidStylistChoice
	}
	return nil
}
