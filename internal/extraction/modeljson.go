package extraction

import (
	"encoding/json"
	"errors"
	"strings"

	"controle-financeiro/internal/normalize"
)

var errNoJSON = errors.New("model response holds no JSON")

// cutJSON strips markdown fences and returns the span between the first open
// and the last close delimiter.
func cutJSON(content string, open, close string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, open)
	end := strings.LastIndex(content, close)
	if start == -1 || end == -1 || end < start {
		return "", errNoJSON
	}
	return content[start : end+1], nil
}

// decodeArray decodes the outermost JSON array of a model response into out.
func decodeArray(content string, out any) error {
	raw, err := cutJSON(content, "[", "]")
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// decodeObject decodes the outermost JSON object of a model response into out.
func decodeObject(content string, out any) error {
	raw, err := cutJSON(content, "{", "}")
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// flexFloat accepts JSON numbers as well as strings such as "1.234,56" or
// "R$ 3,49", which models produce for Brazilian receipts.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null or other shapes read as zero
		*f = 0
		return nil
	}
	*f = flexFloat(normalize.ParseAmount(s))
	return nil
}
