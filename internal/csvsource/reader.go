// Package csvsource decodes the input CSV into invoice records. It owns all
// input-shape concerns — header mapping, required columns, price parsing —
// so that downstream packages only ever see well-formed records.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"billrun/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so validator tags work on
	// price fields without panicking.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// columns the header row must contain, in any order.
var requiredColumns = []string{
	"customer_number", "invoice_number", "name",
	"street_address", "postal_code", "city",
	"email", "phone_number", "article_name", "article_price",
}

// ReadFile loads and decodes the invoice CSV at path.
func ReadFile(path string) ([]model.InvoiceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvsource: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a header-prefixed CSV stream into invoice records. Rows are
// validated as they are decoded; the first bad row aborts with an error
// naming the row number, so a malformed file never reaches the network.
func Decode(r io.Reader) ([]model.InvoiceRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csvsource: read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []model.InvoiceRecord
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvsource: row %d: %w", row, err)
		}
		rec, err := decodeRow(fields, idx)
		if err != nil {
			return nil, fmt.Errorf("csvsource: row %d: %w", row, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csvsource: missing column %q in header", col)
		}
	}
	return idx, nil
}

func decodeRow(fields []string, idx map[string]int) (model.InvoiceRecord, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	price, err := decimal.NewFromString(get("article_price"))
	if err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("invalid article_price %q: %w", get("article_price"), err)
	}

	rec := model.InvoiceRecord{
		CustomerNumber: get("customer_number"),
		InvoiceNumber:  get("invoice_number"),
		Name:           get("name"),
		StreetAddress:  get("street_address"),
		PostalCode:     get("postal_code"),
		City:           get("city"),
		Email:          get("email"),
		PhoneNumber:    get("phone_number"),
		ArticleName:    get("article_name"),
		ArticlePrice:   price,
	}

	if err := validate.Struct(rec); err != nil {
		var missing []string
		for _, fe := range err.(validator.ValidationErrors) {
			missing = append(missing, fe.Field())
		}
		return model.InvoiceRecord{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return rec, nil
}
