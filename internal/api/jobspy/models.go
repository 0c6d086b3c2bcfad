package jobspy

import (
	"bytes"
	"encoding/json"
	"strings"
)

type SearchResponse struct {
	Count int   `json:"count"`
	Jobs  []Job `json:"jobs"`
}

// Job is one scraped row. The scraper serializes dataframes, so any field
// may be null, missing, a number or a placeholder such as "nan".
type Job struct {
	ID                  Text `json:"id"`
	Site                Text `json:"site"`
	JobURL              Text `json:"job_url"`
	JobURLDirect        Text `json:"job_url_direct"`
	Title               Text `json:"title"`
	Company             Text `json:"company"`
	Location            Text `json:"location"`
	DatePosted          Text `json:"date_posted"`
	JobType             Text `json:"job_type"`
	Interval            Text `json:"interval"`
	MinAmount           Text `json:"min_amount"`
	MaxAmount           Text `json:"max_amount"`
	Currency            Text `json:"currency"`
	IsRemote            Text `json:"is_remote"`
	Description         Text `json:"description"`
	CompanyURL          Text `json:"company_url"`
	CompanyLogo         Text `json:"company_logo"`
	CompanyDescription  Text `json:"company_description"`
	CompanyNumEmployees Text `json:"company_num_employees"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// nullMarkers are the strings upstream uses in place of a missing value.
var nullMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"NaN":  true,
	"None": true,
	"NaT":  true,
	"null": true,
}

// Text is an optional scalar. It is set only when upstream sent a real
// value; nulls and placeholder markers leave it unset.
type Text struct {
	value string
	set   bool
}

func Some(v string) Text { return Text{value: v, set: true} }

// Get returns the value and whether it is present.
func (t Text) Get() (string, bool) { return t.value, t.set }

// Or returns the value, or def when absent.
func (t Text) Or(def string) string {
	if !t.set {
		return def
	}
	return t.value
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	case '{', '[':
		// nested values are not scalars we consume
		return nil
	default:
		// numbers and booleans keep their literal spelling
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)
	if nullMarkers[raw] {
		return nil
	}
	*t = Some(raw)
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}
