package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":      "9876543210",
		"+91 98765 43210": "9876543210",
		"098765-43210":    "9876543210",
		"91 9876543210":   "9876543210",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizePhone(raw), "raw %q", raw)
	}
}

func TestContactsFromSlotsValid(t *testing.T) {
	contacts, err := contactsFromSlots("Amma", "+91 98765 43210", "Appa", "8765432109")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "9876543210", contacts[0].Phone)
	assert.Equal(t, 1, contacts[0].Position)
	assert.Equal(t, 2, contacts[1].Position)
}

func TestContactsFromSlotsSkipsEmptySlot(t *testing.T) {
	contacts, err := contactsFromSlots("", "", "Appa", "8765432109")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Appa", contacts[0].Name)
}

func TestContactsFromSlotsRejectsBadPhone(t *testing.T) {
	_, err := contactsFromSlots("Amma", "12345", "", "")
	assert.Error(t, err)

	// landline-style numbers start below 6 and are rejected
	_, err = contactsFromSlots("Amma", "0442741999", "", "")
	assert.Error(t, err)
}

func TestContactsFromSlotsRequiresNameWithPhone(t *testing.T) {
	_, err := contactsFromSlots("", "9876543210", "", "")
	assert.Error(t, err)
}
