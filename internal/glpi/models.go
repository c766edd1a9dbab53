package glpi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString tolerates the mixed scalar types GLPI emits: with
// expand_dropdowns a reference field is usually a name string, but unset
// references come back as the number 0 and some installations return
// plain ids. Null decodes to the empty string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	return fmt.Errorf("cannot decode %s as string", string(data))
}

func (f FlexString) String() string {
	return string(f)
}

// FlexID is an external identifier that may arrive as a JSON number or a
// numeric string, or may be missing entirely. An unparsable id is not an
// error: the record simply reports no id and gets skipped downstream.
type FlexID struct {
	value int64
	valid bool
}

func (f *FlexID) UnmarshalJSON(data []byte) error {
	f.valid = false

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		f.value = n
		f.valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil
		}
		f.value = parsed
		f.valid = true
	}

	return nil
}

func (f FlexID) Int64() (int64, bool) {
	return f.value, f.valid
}

// Computer is the partial remote record shape: every field the API may or
// may not populate is optional and consumers state their own fallbacks.
type Computer struct {
	ID           FlexID     `json:"id"`
	InventoryNo  FlexString `json:"otherserial"`
	Name         FlexString `json:"name"`
	Model        FlexString `json:"computermodels_id"`
	Serial       FlexString `json:"serial"`
	Type         FlexString `json:"computertypes_id"`
	State        FlexString `json:"states_id"`
	User         FlexString `json:"users_id"`
	Manufacturer FlexString `json:"manufacturers_id"`
	DateMod      FlexString `json:"date_mod"`
	DateCreation FlexString `json:"date_creation"`
	Location     FlexString `json:"locations_id"`
	Comment      FlexString `json:"comment"`
}

// ExternalID returns the permanent remote key, or false when the source
// system has not committed one yet.
func (c *Computer) ExternalID() (int64, bool) {
	return c.ID.Int64()
}

// AcquisitionDate derives the purchase date from the modification date,
// falling back to the creation date. GLPI timestamps carry a time-of-day
// part that the store does not keep.
func (c *Computer) AcquisitionDate() *string {
	raw := c.DateMod.String()
	if raw == "" {
		raw = c.DateCreation.String()
	}
	if raw == "" {
		return nil
	}

	date := strings.SplitN(raw, " ", 2)[0]
	return &date
}

// AuthenticationError is a failed session handshake; the response body is
// kept for diagnostics.
type AuthenticationError struct {
	Status int
	Body   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("glpi authentication failed (status %d): %s", e.Status, e.Body)
}

// FetchError is any record-fetch request failure that is not the
// range-exceeds-total paging sentinel.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("glpi fetch failed (status %d): %s", e.Status, e.Body)
}
