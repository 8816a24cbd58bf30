package prompts

var (
	JOB_EXTRACTION = SYS_PROMPT{
		Intent:         "ExtractJob",
		CurrentVersion: 0.2,
		Items: map[float32]PromptDefinition{
			0.1: {
				Version: 0.1,
				Content: `
				Extract a job request from the user's words. Reply with JSON only.
				`,
			},
			0.2: {
				Version: 0.2,
				Content: `
				You turn a spoken request for household or blue-collar help in India
				into a job posting. The text may be in any Indian language or mixed.
				Reply with a single JSON object and nothing else:
				{"title": string, "description": string, "serviceCategory": string,
				 "urgency": "low"|"medium"|"high",
				 "budget": {"min": number, "max": number} or null,
				 "location": {"area": string, "district": string, "state": string},
				 "requirements": [string], "timeframe": string}
				serviceCategory must be one of: %s.
				Write title and description in English. Amounts are in rupees.
				Leave a field empty when the speaker did not say it; never invent details.
				`,
			},
		},
	}

	USER_EXTRACTION = SYS_PROMPT{
		Intent:         "ExtractUser",
		CurrentVersion: 0.1,
		Items: map[float32]PromptDefinition{
			0.1: {
				Version: 0.1,
				Content: `
				You read how a person introduced themselves and fill in a signup form.
				The text may be in any Indian language or mixed. Reply with a single
				JSON object and nothing else:
				{"firstName": string, "lastName": string, "mobile": string,
				 "location": {"area": string, "district": string, "state": string}}
				mobile is the 10 digit Indian number without country code, or empty.
				Transliterate names into Latin script. Never invent details.
				`,
			},
		},
	}
)
