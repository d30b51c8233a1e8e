package llm

import "fmt"

// BuildCharacterExtractionPrompt asks the model to pull structured character
// data out of a story summary as a JSON array.
func BuildCharacterExtractionPrompt(story string) string {
	return fmt.Sprintf(`You are an intelligent assistant designed to extract fictional character data from story summaries.
Given a short story or summary text, identify the main characters and output their structured details in JSON format.
Output Format:
[{"name": "Lina Voss", "role": "protagonist", "appearance": "A young woman...", "booru_tags": "silver hair, green eyes, long red coat, mechanical crossbow"}]
Be concise, vivid, and include at least 3 tags per character.

STORY:
%s`, story)
}

// BuildBooruTagsPrompt asks the model to turn an appearance description into
// comma-separated booru-style visual tags.
func BuildBooruTagsPrompt(appearance string) string {
	return fmt.Sprintf(`You are a visual tag generator.
Given a character appearance description, return a comma-separated list of booru-style visual tags.
Focus especially on physical appearance, facial features, body type, ethnicity, skin color, and gender.
Use short, 2-4 word phrases like: 'curly red hair, black jacket, robotic eye'.
Do not include emotions or abstract traits.

APPEARANCE: %s`, appearance)
}

// BuildInitialSummaryPrompt generates a story summary from a raw prompt.
func BuildInitialSummaryPrompt(prompt string) string {
	return fmt.Sprintf(`Generate a vivid, engaging story summary (1-3 paragraphs) based on the following prompt:
%s

Focus on:
- Rich, descriptive language
- Clear narrative flow
- Engaging character and setting details
- Natural pacing and structure`, prompt)
}

// BuildLightCorrectionPrompt fixes grammar and flow without changing meaning.
func BuildLightCorrectionPrompt(summary string) string {
	return fmt.Sprintf(`Please correct only grammar, sentence flow, and clarity in the following text.
Do not change the meaning, structure, or add/remove content.
Try to retain the length and level of detail of the original summary as much as possible.
Return ONLY the corrected summary. Do not include explanations or commentary:

%s`, summary)
}

// BuildInstructionRefinementPrompt revises a summary per a user instruction.
func BuildInstructionRefinementPrompt(summary, instruction string) string {
	return fmt.Sprintf(`Revise the following story summary according to this instruction: "%s".
Be creative as needed while maintaining the core narrative.
Try to retain the length and level of detail of the original summary as much as possible.
Return ONLY the revised summary. Do not include explanations or commentary:

%s`, instruction, summary)
}
