package cart

import (
	"encoding/json"
	"strings"

	"lumenstore.com/app/internal/shared/apperr"
)

// FormInputField is the form field carrying the JSON encoded action.
const FormInputField = "cartFormInput"

type Action string

const (
	ActionLinesAdd            Action = "LinesAdd"
	ActionLinesUpdate         Action = "LinesUpdate"
	ActionLinesRemove         Action = "LinesRemove"
	ActionNoteUpdate          Action = "NoteUpdate"
	ActionDiscountCodesUpdate Action = "DiscountCodesUpdate"
)

const maxNoteLength = 1000

// FormInput is the body of a POST /cart submission.
type FormInput struct {
	Action Action `json:"action"`
	Inputs Inputs `json:"inputs"`
}

type Inputs struct {
	Lines         []LineInput `json:"lines,omitempty"`
	LineIDs       []string    `json:"lineIds,omitempty"`
	Note          *string     `json:"note,omitempty"`
	DiscountCodes []string    `json:"discountCodes,omitempty"`
}

// LineInput addresses a variant (LinesAdd) or an existing line (LinesUpdate).
type LineInput struct {
	ID            string `json:"id,omitempty"`
	MerchandiseID string `json:"merchandiseId,omitempty"`
	Quantity      *int   `json:"quantity,omitempty"`
}

func invalidCartInput(msg string) error {
	return apperr.InvalidErr(msg, map[string]string{FormInputField: msg})
}

// ParseFormInput decodes and checks a cartFormInput value.
func ParseFormInput(raw string) (FormInput, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FormInput{}, invalidCartInput("Missing cart action.")
	}
	var in FormInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return FormInput{}, invalidCartInput("Malformed cart action.")
	}
	return in, in.validate()
}

func (in FormInput) validate() error {
	switch in.Action {
	case ActionLinesAdd:
		if len(in.Inputs.Lines) == 0 {
			return invalidCartInput("Nothing to add.")
		}
		for _, l := range in.Inputs.Lines {
			if strings.TrimSpace(l.MerchandiseID) == "" {
				return invalidCartInput("Please select a variant.")
			}
		}
	case ActionLinesUpdate:
		if len(in.Inputs.Lines) == 0 {
			return invalidCartInput("Nothing to update.")
		}
		for _, l := range in.Inputs.Lines {
			if strings.TrimSpace(l.ID) == "" || l.Quantity == nil {
				return invalidCartInput("Each line needs an id and a quantity.")
			}
		}
	case ActionLinesRemove:
		if len(in.Inputs.LineIDs) == 0 {
			return invalidCartInput("Nothing to remove.")
		}
	case ActionNoteUpdate:
		if in.Inputs.Note == nil {
			return invalidCartInput("Missing note.")
		}
		if len([]rune(*in.Inputs.Note)) > maxNoteLength {
			return invalidCartInput("Note is too long.")
		}
	case ActionDiscountCodesUpdate:
		// an empty list clears the codes
	case "":
		return invalidCartInput("Missing cart action.")
	default:
		return invalidCartInput("Unknown cart action.")
	}
	return nil
}

// normalizeCodes upper-cases, trims and de-duplicates discount codes.
func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := map[string]struct{}{}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
