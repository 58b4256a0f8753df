package contacts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaiveParser_SingleRow(t *testing.T) {
	got, err := NaiveParser{}.Parse("phoneNumber,clientName,source\n+33612345678,Jean Dupont,web")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Contact{
		PhoneNumber: "+33612345678",
		ClientName:  "Jean Dupont",
		Metadata:    map[string]string{"source": "web"},
	}, got[0])
}

func TestNaiveParser_HeaderMatchIsCaseInsensitive(t *testing.T) {
	got, err := NaiveParser{}.Parse(" PHONENUMBER , ClientName \r\n0600000000,Alice\r\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0600000000", got[0].PhoneNumber)
	assert.Equal(t, "Alice", got[0].ClientName)
	assert.Empty(t, got[0].Metadata)
}

func TestNaiveParser_MissingColumns(t *testing.T) {
	inputs := []string{
		"",
		"phone,clientName\n0600000000,Alice",
		"phoneNumber,name\n0600000000,Alice",
		"email\nalice@example.com",
	}
	for _, in := range inputs {
		got, err := NaiveParser{}.Parse(in)
		var missing *MissingColumnError
		require.ErrorAs(t, err, &missing, "input %q", in)
		assert.Empty(t, got)
		assert.Equal(t, "CSV file must have phoneNumber and clientName columns", err.Error())
	}
}

func TestNaiveParser_ReportsWhichColumnsAreMissing(t *testing.T) {
	_, err := NaiveParser{}.Parse("phoneNumber,company")
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"clientName"}, missing.Missing)
}

func TestNaiveParser_SkipsBlankAndIncompleteRows(t *testing.T) {
	content := "phoneNumber,clientName,city\n" +
		"0600000001,Alice,Paris\n" +
		"\n" +
		"   \n" +
		",Bob,Lyon\n" +
		"0600000003,  ,Nice\n" +
		"0600000004,Dan\n"

	got, err := NaiveParser{}.Parse(content)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].ClientName)
	assert.Equal(t, "Dan", got[1].ClientName)
	assert.Equal(t, map[string]string{"city": ""}, got[1].Metadata, "missing values default to empty")
}

func TestNaiveParser_CountMatchesUsableRows(t *testing.T) {
	content := "clientName,phoneNumber\nA,1\nB,2\n\nC,\nD,4\n"
	got, err := NaiveParser{}.Parse(content)
	require.NoError(t, err)
	// 5 non-blank rows minus the one with an empty phone number.
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "4"}, []string{got[0].PhoneNumber, got[1].PhoneNumber, got[2].PhoneNumber})
}

func TestNaiveParser_QuotedCommasAreNotSpecial(t *testing.T) {
	got, err := NaiveParser{}.Parse("phoneNumber,clientName,company\n0600000000,\"Dupont, Jean\",ACME")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `"Dupont`, got[0].ClientName)
	assert.Equal(t, `Jean"`, got[0].Metadata["company"])
}

func TestStrictParser_HandlesQuotedCommas(t *testing.T) {
	got, err := StrictParser{}.Parse("phoneNumber,clientName,company\n0600000000,\"Dupont, Jean\",ACME\n\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dupont, Jean", got[0].ClientName)
	assert.Equal(t, map[string]string{"company": "ACME"}, got[0].Metadata)
}

func TestStrictParser_MissingColumns(t *testing.T) {
	_, err := StrictParser{}.Parse("")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)

	_, err = StrictParser{}.Parse("a,b\n1,2")
	require.ErrorAs(t, err, &missing)
}

func TestParserNamed(t *testing.T) {
	p, ok := ParserNamed("strict")
	require.True(t, ok)
	assert.IsType(t, StrictParser{}, p)

	p, ok = ParserNamed("naive")
	require.True(t, ok)
	assert.IsType(t, NaiveParser{}, p)

	_, ok = ParserNamed("excel")
	assert.False(t, ok)
}
