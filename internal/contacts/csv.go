package contacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const (
	columnPhoneNumber = "phonenumber"
	columnClientName  = "clientname"
)

// Parser turns the raw text of an uploaded contact file into contacts.
type Parser interface {
	Parse(content string) ([]Contact, error)
}

// MissingColumnError reports a header row without the required columns.
type MissingColumnError struct {
	Missing []string
}

func (e *MissingColumnError) Error() string {
	return "CSV file must have phoneNumber and clientName columns"
}

// NaiveParser splits lines on newline and fields on comma, nothing more.
//
// Commas inside quoted fields are NOT handled: `"Dupont, Jean"` becomes two fields
// and shifts every following column. Use StrictParser for quoted input.
type NaiveParser struct{}

func (NaiveParser) Parse(content string) ([]Contact, error) {
	lines := strings.Split(content, "\n")
	header := strings.Split(lines[0], ",")

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	return buildContacts(header, rows)
}

// StrictParser reads RFC 4180 CSV, so quoted fields may contain commas, quotes
// and line breaks. Column semantics are the same as NaiveParser.
type StrictParser struct{}

func (StrictParser) Parse(content string) ([]Contact, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &MissingColumnError{Missing: []string{"phoneNumber", "clientName"}}
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return buildContacts(header, rows)
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// buildContacts maps positional rows onto the header. Rows whose phone number or
// client name is blank are dropped without error.
func buildContacts(header []string, rows [][]string) ([]Contact, error) {
	phoneIdx, nameIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case columnPhoneNumber:
			if phoneIdx == -1 {
				phoneIdx = i
			}
		case columnClientName:
			if nameIdx == -1 {
				nameIdx = i
			}
		}
	}
	if phoneIdx == -1 || nameIdx == -1 {
		var missing []string
		if phoneIdx == -1 {
			missing = append(missing, "phoneNumber")
		}
		if nameIdx == -1 {
			missing = append(missing, "clientName")
		}
		return nil, &MissingColumnError{Missing: missing}
	}

	out := make([]Contact, 0, len(rows))
	for _, values := range rows {
		phone := valueAt(values, phoneIdx)
		name := valueAt(values, nameIdx)
		if phone == "" || name == "" {
			continue
		}

		metadata := make(map[string]string, len(header))
		for i, h := range header {
			if i == phoneIdx || i == nameIdx {
				continue
			}
			metadata[strings.TrimSpace(h)] = valueAt(values, i)
		}
		out = append(out, Contact{PhoneNumber: phone, ClientName: name, Metadata: metadata})
	}
	return out, nil
}

func valueAt(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[i])
}

// ParserNamed returns the parser registered under name ("naive" or "strict").
func ParserNamed(name string) (Parser, bool) {
	switch name {
	case "naive":
		return NaiveParser{}, true
	case "strict":
		return StrictParser{}, true
	}
	return nil, false
}
