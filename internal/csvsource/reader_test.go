package csvsource

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "customer_number,invoice_number,name,street_address,postal_code,city,email,phone_number,article_name,article_price\n"

func TestDecode(t *testing.T) {
	input := header +
		"1001,INV-1,Terry Gilliam,Storgatan 1,11122,Stockholm,terry@example.com,0721459613,Box Set,125.00\n" +
		"1002,INV-2,Eric Idle,Lillgatan 2,22233,Lund,,,Spam Tin,50\n"

	records, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "1001", first.CustomerNumber)
	assert.Equal(t, "INV-1", first.InvoiceNumber)
	assert.Equal(t, "Terry Gilliam", first.Name)
	assert.Equal(t, "terry@example.com", first.Email)
	assert.True(t, first.ArticlePrice.Equal(decimal.NewFromFloat(125.0)))

	// optional contact columns may be empty
	second := records[1]
	assert.Empty(t, second.Email)
	assert.Empty(t, second.PhoneNumber)
}

func TestDecodeHeaderOrderIndependent(t *testing.T) {
	input := "invoice_number,customer_number,article_price,article_name,name,street_address,postal_code,city,email,phone_number\n" +
		"INV-1,1001,125.00,Box Set,Terry,Storgatan 1,11122,Stockholm,,\n"

	records, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1001", records[0].CustomerNumber)
	assert.Equal(t, "Box Set", records[0].ArticleName)
}

func TestDecodeMissingColumn(t *testing.T) {
	input := "customer_number,invoice_number\n1001,INV-1\n"
	_, err := Decode(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestDecodeBadPrice(t *testing.T) {
	input := header + "1001,INV-1,Terry,Storgatan 1,11122,Stockholm,,,Box Set,not-a-price\n"
	_, err := Decode(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "article_price")
}

func TestDecodeMissingRequiredField(t *testing.T) {
	input := header + "1001,INV-1,,Storgatan 1,11122,Stockholm,,,Box Set,125\n"
	_, err := Decode(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "Name")
}
