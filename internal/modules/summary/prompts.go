package summary

import "fmt"

const draftPromptTemplate = `You are an AI travel assistant. A user wants to travel from %s to %s.
Provide travel options for cab, train, bus, and flight with estimated prices and travel times.
Strictly don't include summary table, but include recommendations and precautionary notes`

const translatePromptTemplate = `Translate the following travel summary to %s
strictly don't include any breakdown of key translations.


%s`

func BuildDraftPrompt(source, destination string) string {
	return fmt.Sprintf(draftPromptTemplate, source, destination)
}

func BuildTranslatePrompt(languageCode, text string) string {
	return fmt.Sprintf(translatePromptTemplate, LanguageName(languageCode), text)
}
