package llm

import (
	"encoding/json"
	"strings"
)

// promptTemplate is the extraction instruction sent to the model. Its field
// list and format rules are a contract: the response parser and
// IdentityFields assume exactly these keys.
const promptTemplate = `
Extract the following information from the provided document and return it in JSON format:

- 'name': The name of the person
- 'dob': The date of birth of the person in DD-MM-YYYY format
- 'phone': The phone number of the person. It should be a ten-digit number. If uncertain, return null. The format follows: b(?:\+91\s?)?\(?(\d{10})\)?
- 'document_number': The document number, which could be:
  - A 12-digit Aadhaar card number (format: [\d]{4} [\d]{4} [\d]{4})
  - A 10-digit PAN card number (format: [A-Z]{5}[\d]{4}[A-Z])
  - A driving license number (format: [A-Za-z]{2}[\d]{2}[\d]{11})
  - Or other types of document numbers
- 'address': The address of the person. If uncertain, return null
- 'type': The type of document (e.g., Aadhaar card, marksheet)
- 'language': The language in which the text is written. If uncertain, return null
- 'gender': The gender of the person. If uncertain, return null

Ensure the following:
- Only the specified information is included in the output.
- The output is a single JSON object.
- The JSON response starts with { and ends with }.
- No additional comments, notes, or extra information are included.
- Each document will have only one 'document_number' key.

Output only the JSON data as described above.

Document:
`

// BuildPrompt embeds the aggregated OCR tokens into the instruction
// template. Tokens are serialized as a JSON array so ordering survives
// verbatim.
func BuildPrompt(tokens []string) string {
	body, err := json.Marshal(tokens)
	if err != nil {
		// []string cannot fail to marshal; keep the prompt usable anyway.
		body = []byte("[]")
	}

	var b strings.Builder
	b.Grow(len(promptTemplate) + len(body) + 1)
	b.WriteString(promptTemplate)
	b.Write(body)
	b.WriteString("\n")
	return b.String()
}
