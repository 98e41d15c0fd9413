package libphonenumber

import (
	"testing"

	"github.com/nyaruka/phonenumbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jtac "github.com/plblum/jTAC-sub003"
)

func TestNodeValidatesForRegion(t *testing.T) {
	us := Node("us")
	assert.True(t, us.Validate("(201) 555-0123"))
	assert.True(t, us.Validate("+1 201 555 0123"))
	assert.False(t, us.Validate("12345"))
	assert.False(t, us.Validate("01 23 45 67 89"))

	assert.Equal(t, "+12015550123", us.ToNeutral("201.555.0123"))
	assert.Equal(t, "(201) 555-0123", us.ToDisplay("2015550123"))
}

func TestNodeDisplayFormat(t *testing.T) {
	fr := Node("FR", WithDisplayFormat(phonenumbers.INTERNATIONAL))
	assert.Equal(t, "+33 1 23 45 67 89", fr.ToDisplay("0123456789"))
	assert.Equal(t, "+33123456789", fr.ToNeutral("01 23 45 67 89"))
}

func TestRegionStringWithLibphonenumber(t *testing.T) {
	table := Regions([]string{"US", "FR"})
	culture, err := jtac.DefaultCultureRegistry().Culture("fr-FR")
	require.NoError(t, err)

	phone, err := jtac.NewRegionString(culture, table, jtac.RegionStringOptions{StringOptions: jtac.DefaultStringOptions()})
	require.NoError(t, err)
	assert.Equal(t, "FR", phone.Region())

	value, err := phone.ToValue("0123456789")
	require.NoError(t, err)
	assert.Equal(t, "01 23 45 67 89", value)

	neutral, err := phone.ToStringNeutral(value)
	require.NoError(t, err)
	assert.Equal(t, "+33123456789", neutral)

	_, err = phone.ToValue("0023")
	require.Error(t, err)
	assert.True(t, jtac.IsInputError(err))
}

func TestRegisterCulture(t *testing.T) {
	table := jtac.PhoneNumberRegions()
	culture, err := jtac.DefaultCultureRegistry().Culture("en-GB")
	require.NoError(t, err)

	assert.Equal(t, "GB", RegisterCulture(table, culture))
	node, ok := table.Node("gb")
	require.True(t, ok)
	assert.NotNil(t, node.Validate)

	assert.Equal(t, "", RegisterCulture(table, nil))
}
