package agent

import "fmt"

// maxContextChars bounds how much gathered content is inlined into the
// quiz generation prompt.
const maxContextChars = 3000

const quizPromptTemplate = `You are an expert quiz creator. Create a comprehensive quiz based on the following request and context.

User Request: %s

Context Information:
%s

Please create a quiz with the following structure:
1. A clear title
2. 3-5 multiple choice questions
3. Each question should have 4 options (A, B, C, D)
4. Include the correct answer and a brief explanation
5. Vary the difficulty level

Format your response as a structured text that can be parsed into a quiz object.

Title: [Quiz Title]
Description: [Brief description]

Question 1:
Type: multiple_choice
Difficulty: [easy/medium/hard]
Question: [Question text]
A) [Option A]
B) [Option B]
C) [Option C]
D) [Option D]
Correct Answer: [A/B/C/D]
Explanation: [Brief explanation]

[Continue for all questions...]
`

const questionPromptTemplate = `Generate a single quiz question based on the following request:

%s

Please create a well-structured multiple choice question with:
- Clear, unambiguous question text
- 4 plausible answer options (A, B, C, D)
- One correct answer
- Brief explanation for the correct answer
- Appropriate difficulty level

Format your response exactly as follows:

Question: [Your question text]
A) [Option A]
B) [Option B]
C) [Option C]
D) [Option D]
Correct Answer: [A/B/C/D]
Explanation: [Brief explanation]
Difficulty: [easy/medium/hard]
`

// quizPrompt renders the quiz generation prompt. Context is truncated so
// a long research trail cannot blow the provider's input window.
func quizPrompt(userInput, context string) string {
	if context == "" {
		context = "No additional context provided."
	} else if len(context) > maxContextChars {
		context = context[:maxContextChars]
	}
	return fmt.Sprintf(quizPromptTemplate, userInput, context)
}

// questionPrompt renders the single-question generation prompt.
func questionPrompt(userInput string) string {
	return fmt.Sprintf(questionPromptTemplate, userInput)
}
