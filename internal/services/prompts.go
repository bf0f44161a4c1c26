package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/courseforge/courseforge-backend/internal/types"
)

// Shared voice block prepended to every course-content prompt. The
// courses are internal, self-paced training material, so the register is
// colleague-to-colleague rather than consultant-to-client.
const trainingVoiceContext = `Brand voice and context:
You are writing internal training material for colleagues, not external clients.
- Tone: professional, authoritative, efficient, and safety-conscious.
- ALWAYS use "We", "Our", and "Us" when referring to the organisation.
- Link learning back to day-to-day operations ("When you're on the trade counter...", "Our customers rely on us to know this...").

Content guidelines:
- LANGUAGE: Use UK English spelling ONLY (e.g., "analyse", "colour", "centre", "programme", "organisation").
- If the topic is technical, use precise trade terminology; if it is soft-skills or operational, use realistic workplace scenarios. Avoid forced jargon.

Formatting and context (CRITICAL):
- This is an ONLINE, SELF-PACED course, NOT a live presentation.
- Do NOT use phrases like "Presented by", "Welcome to my presentation", "Any questions?", or "Thank you for listening".
- Do NOT include a Q&A section at the end.
- Content must be direct and informational, suitable for reading or listening without a live presenter.`

func outlineSystemPrompt(supportingDocs string) string {
	var b strings.Builder
	b.WriteString(trainingVoiceContext)
	b.WriteString(`

You are an expert instructional designer. Create a comprehensive course outline for the topic provided.
Return ONLY a JSON object with this structure:
{
    "title": "Course Title (Max 50 Characters)",
    "description": "Short description (100-140 Characters)",
    "thumbnail_query": "A precise visual description of a single physical object that metaphorically represents this topic (e.g. 'a brass compass' for direction, 'a steel padlock' for security). Do NOT use people or abstract concepts.",
    "modules": [
        {
            "title": "Module Title",
            "lessons": [
                { "title": "Lesson Title", "concept": "Key concept to teach" }
            ]
        }
    ]
}

CRITICAL CONSTRAINTS:
1. Use UK English spelling.
2. The "title" MUST be 50 characters or fewer for UI consistency.
3. The "description" MUST be between 100 and 140 characters.
4. Create a comprehensive structure, typically 3-4 modules with 2-3 lessons each.`)

	if supportingDocs != "" {
		b.WriteString("\n\nADDITIONAL CONTEXT FROM UPLOADED DOCUMENTS:\n")
		b.WriteString(supportingDocs)
		b.WriteString("\n\nUse the information above to ensure the course outline is tailored to the specific policies, procedures, or content provided in the documents.")
	}
	return b.String()
}

func lessonSystemPrompt(outline *types.Outline, moduleTitle string, lesson *types.OutlineLesson, supportingDocs string) string {
	type moduleTitles struct {
		Title   string   `json:"title"`
		Lessons []string `json:"lessons"`
	}
	flat := make([]moduleTitles, 0, len(outline.Modules))
	for _, m := range outline.Modules {
		mt := moduleTitles{Title: m.Title}
		for _, l := range m.Lessons {
			mt.Lessons = append(mt.Lessons, l.Title)
		}
		flat = append(flat, mt)
	}
	outlineJSON, _ := json.Marshal(flat)

	activity := lesson.ActivityType
	if activity == "" {
		activity = types.ActivityTone
	}

	var b strings.Builder
	b.WriteString(trainingVoiceContext)
	b.WriteString(fmt.Sprintf(`

You are an expert audio-visual course creator.

**OBJECTIVE**: Create a 10-slide visual presentation script and a written lesson.
**CONTEXT**: You are writing a specific lesson within a larger course.
COURSE TITLE: %q
MODULE: %q
THIS LESSON: %q
FULL OUTLINE: %s

Ensure this lesson flows naturally from previous ones and leads into the next.

Output JSON format:
{
    "presentation_input": "Detailed script content for the 10 slides, including bullet points and headers. This will be sent to the slide-deck service.",
    "audio_summary": "A detailed 3-4 minute (approx 600-800 words) audio script covering the ENTIRE lesson deeply. It should be engaging, professional, and flow like a podcast or expert briefing.",
    "markdown_content": "Detailed markdown content (Min 800 words) for the reading mode.",
    "quiz": [
        { "question": "...", "options": ["A", "B", "C", "D"], "correct_index": 0, "explanation": "Brief context." }
    ],
    "ai_component": {
        "type": %q,
        "config": { ... }
    }
}

CRITICAL CONSTRAINTS:
1. **presentation_input**: Needs to be structured for a slide deck.
2. **audio_summary**: This is crucial. It must be LONG and comprehensive.
3. **markdown_content**: Must be UK English. Include '### Interactive Activity' header if component is used.
4. **quiz**: Must contain exactly 3 questions.
5. **ai_component**: YOU MUST GENERATE A COMPONENT OF TYPE %q. CREATE A SENSIBLE ACTIVITY OF THIS TYPE THAT RELATES TO THE LESSON CONTENT.

AI Component Configs:
- ai-tone: { "context": "Brief context...", "incoming_email": "The full text of the email the user must reply to. Make it realistic and relevant to the lesson.", "initialText": "" }
- ai-dojo: { "scenarioId": "generated_id", "intro": "Scenario intro regarding the PLAYER'S situation...", "role": "Role for AI to play", "objective": "Goal for user", "skills": ["Skill 1", "Skill 2"], "initialText": "A realistic opening line for the AI character to start the call." }
- ai-redline: { "title": "Audit Document Name", "items": [{ "content": "Full sentence describing a policy or statement found in the document...", "isRisk": true, "feedback": "Explanation of why this is a mistake." }, { "content": "Another statement that is compliant...", "isRisk": false }] } (CRITICAL: "items" array is REQUIRED. Generate 5-7 items total. Approx 2/3 should be RISKS ('isRisk': true) and 1/3 should be safe.)
- ai-debate: { "topic": "Debate topic...", "aiSide": "pro/con/devil_advocate", "stances": ["Option A", "Option B"] } (CRITICAL: Provide "stances" if the topic isn't a simple Agree/Disagree, e.g. ["Prioritise Relationships", "Prioritise Speed"])
- ai-swipe: { "title": "Decision Scenario", "cards": [{ "text": "Option...", "isCorrect": true, "feedback": "Why..." }], "labels": { "left": "Reject", "right": "Accept" } } (CRITICAL: Generate a MINIMUM of 5 cards)`,
		outline.Title, moduleTitle, lesson.Title, string(outlineJSON), activity, activity))

	if supportingDocs != "" {
		b.WriteString("\n\nADDITIONAL CONTEXT FROM UPLOADED DOCUMENTS:\n")
		b.WriteString(supportingDocs)
		b.WriteString("\n\nUse this information extensively to ensure the lesson content is factually accurate and aligned with the provided documents.")
	}
	return b.String()
}

// Thumbnail prompt pieces. The describer turns an abstract topic into one
// concrete object; the style wrapper pins the aesthetic.
const visualDescriberPrompt = `You are a visual prompt engineer. Your job is to convert abstract course topics into a SINGLE, CONCRETE, PHYSICAL OBJECT that represents the topic metaphorically.

RULES:
1. Output ONLY the visual description. No explanations.
2. DO NOT include people, faces, human limbs, or text of any kind.
3. The object must be the MOST RECOGNISABLE symbol for the topic.
4. The object must be suitable for a high-end product photography shot.
5. Examples:
   - "Introduction to Recruitment" -> "A magnifying glass resting on a stack of premium paper resumes"
   - "Time Management" -> "A complex mechanical pocket watch mechanism"
   - "Leadership" -> "A chess king piece made of polished obsidian"
   - "Conflict Resolution" -> "A balanced scale made of brass"
   - "Cloud Computing" -> "A glowing server rack module made of glass and light"`

const (
	thumbnailStylePrefix = "A premium, high-contrast, professional close-up macro photograph of"
	thumbnailStyleSuffix = ". The aesthetic is sleek, industrial, and minimalist, featuring dramatic chiaroscuro lighting and deep shadows. CRITICAL: This is a direct view of the object. Do NOT show any production equipment, cameras, tripods, lights, studios, or film sets. The image must look like a high-end product shot, not a behind-the-scenes shot. No text. 8k resolution, photorealistic."
)
