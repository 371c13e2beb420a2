package admin

import (
	"strconv"

	"sweetshop-web/pkg/errors"
)

// RestockState tracks which table row, if any, has its inline restock input
// open. A single pointer for the whole table makes the one-active-row rule
// structural: beginning a restock on a new row implicitly cancels any other
// in-progress edit.
type RestockState struct {
	activeID string
	draft    string
}

// Begin opens the inline input for the given row
func (s *RestockState) Begin(id string) {
	s.activeID = id
	s.draft = ""
}

// Cancel closes the inline input
func (s *RestockState) Cancel() {
	s.activeID = ""
	s.draft = ""
}

// Active reports whether any row is in restock-edit mode
func (s *RestockState) Active() bool {
	return s.activeID != ""
}

// Editing reports whether the given row is the one being edited
func (s *RestockState) Editing(id string) bool {
	return s.activeID != "" && s.activeID == id
}

// ActiveID returns the row currently in restock-edit mode, or ""
func (s *RestockState) ActiveID() string {
	return s.activeID
}

// SetDraft records the pending quantity input so a failed submission can
// re-render it
func (s *RestockState) SetDraft(raw string) {
	s.draft = raw
}

// Draft returns the pending quantity input
func (s *RestockState) Draft() string {
	return s.draft
}

// ParseQuantity validates a restock submission: it must be a whole positive
// number. Anything else is rejected client-side with no request sent.
func ParseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity <= 0 {
		return 0, errors.NewValidationFailure("Please enter a valid quantity")
	}
	return quantity, nil
}
