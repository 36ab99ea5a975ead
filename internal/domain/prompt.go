package domain

import "strings"

// Questions asked of the summarizer.
const (
	DefaultQuestion = "Please provide a concise and clear summary of the following"

	NodeQuestion = "Write a brief single sentence documentation summary of the purpose of the following:"

	FileQuestion = "Summarize the following in a single paragraph"

	FolderQuestion = "Write a brief single sentence summary of what the following folder contents are for:"

	DirectoryTagsQuestion = "Based on the following, return ONLY a comma separated list of 1-6 tags. " +
		"The tags should center around concepts or domains the code can help with. " +
		"Do not return any other text in your response."

	FileTagsQuestion = "Based on the following, return ONLY a comma separated list of 1-4 tags. " +
		"The tags should center around concepts or domains the code can help with. " +
		"Do not return any other text in your response."

	ComplexityQuestion = "Estimate a complexity rating for the code as a number between 1-5 " +
		"(1 = Very low, 2 = Low, 3 = Medium, 4 = High, 5 = Very high)"

	SuggestionsQuestion = "Provide a bullet list of code improvement and refactor suggestions for the following code. " +
		"Consider especially refactoring patterns like Extract method/class and Return early " +
		"to break the code into smaller composable parts and avoid deep nesting."
)

// FormatPrompt builds the prompt sent to a language model.
// An empty question selects DefaultQuestion.
func FormatPrompt(question, text string) string {
	if question == "" {
		question = DefaultQuestion
	}
	return question + ":\n\n\"" + text + "\""
}

// StripQuotes removes one leading and one trailing double quote.
func StripQuotes(text string) string {
	text = strings.TrimPrefix(text, `"`)
	return strings.TrimSuffix(text, `"`)
}

// CleanReply trims a raw model reply and strips the quotes it tends to echo back.
func CleanReply(reply string) string {
	return StripQuotes(strings.TrimSpace(reply))
}
