package travel

import "fmt"

const optionsPromptTemplate = `You are an AI travel assistant. A user wants to travel from %[1]s to %[2]s
with a preference for %[3]s. Provide travel options for cab, train, bus, and flight.
Return the response strictly in **valid JSON format**, without any extra text or explanations.
Ensure prices are in the correct currency based on the source country.

If a travel mode (e.g., bus, train) is **not possible**, list it with "provider": "Unavailable",
"price": 0, "duration": "N/A" and give a clear reason in the "description" field.

Example Output:
` + "```json" + `
{
    "flights": [
        {
            "provider": "Air India",
            "price": 5000,
            "duration": "3h",
            "notes": "Non-stop flight",
            "description": "Direct flights available from major airports.",
            "booking_url": "https://www.airindia.com/"
        }
    ],
    "trains": [
        {
            "provider": "IRCTC",
            "price": 1500,
            "duration": "5h",
            "notes": "Sleeper class available",
            "description": "Trains operate between major cities within the country.",
            "booking_url": "https://www.irctc.co.in/"
        },
        {
            "provider": "Unavailable",
            "price": 0,
            "duration": "N/A",
            "notes": "Not applicable",
            "description": "Train travel between %[1]s and %[2]s is not possible due to geographical barriers."
        }
    ],
    "buses": [],
    "cabs": []
}
` + "```" + `
Respond **only** with the JSON block.
`

// BuildOptionsPrompt renders the prompt asking the model for travel options as
// a fenced JSON block. Source and destination are expected to be non-empty.
func BuildOptionsPrompt(q Query) string {
	return fmt.Sprintf(optionsPromptTemplate, q.Source, q.Destination, q.Preference)
}
