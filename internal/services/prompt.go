package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"aren-backend/internal/models"
)

// LearningStyle selects the modality block of the tutor prompt.
type LearningStyle string

const (
	StyleVisual         LearningStyle = "visual"
	StyleAuditory       LearningStyle = "auditory"
	StyleKinesthetic    LearningStyle = "kinesthetic"
	StyleReadingWriting LearningStyle = "reading/writing"
)

var learningStyleAliases = map[string]LearningStyle{
	"visual":          StyleVisual,
	"auditory":        StyleAuditory,
	"kinesthetic":     StyleKinesthetic,
	"reading/writing": StyleReadingWriting,
	"reading-writing": StyleReadingWriting,
	"reading":         StyleReadingWriting,
	"writing":         StyleReadingWriting,
	"read/write":      StyleReadingWriting,
}

// ParseLearningStyle matches s case-insensitively against the supported styles.
func ParseLearningStyle(s string) (LearningStyle, error) {
	style, ok := learningStyleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &ConfigurationError{Field: "learningType", Value: s}
	}
	return style, nil
}

// MasteryBand groups a topic score into one of three teaching strategies.
type MasteryBand string

const (
	BandFoundation   MasteryBand = "foundation"   // > 80
	BandPractice     MasteryBand = "practice"     // 60..80 inclusive
	BandFundamentals MasteryBand = "fundamentals" // < 60
)

// ClassifyScore assigns a mastery score to its band. 60 and 80 are practice.
func ClassifyScore(score int) MasteryBand {
	switch {
	case score > 80:
		return BandFoundation
	case score >= 60:
		return BandPractice
	default:
		return BandFundamentals
	}
}

var bandDirectives = []struct {
	band      MasteryBand
	directive string
	guidance  string
}{
	{BandFoundation, "Topics >80%: Use as foundation to build confidence", "use as a foundation to build confidence"},
	{BandPractice, "Topics 60-80%: Practice to solidify understanding", "practice to solidify understanding"},
	{BandFundamentals, "Topics <60%: Focus on fundamental concepts", "focus on fundamental concepts"},
}

func bandGuidance(b MasteryBand) string {
	for _, d := range bandDirectives {
		if d.band == b {
			return d.guidance
		}
	}
	return ""
}

// Persona is the tutor character the prompt describes.
type Persona struct {
	Name    string
	Animal  string
	Subject string
}

var DefaultPersona = Persona{Name: "Aren", Animal: "capybara", Subject: "mathematics"}

// PromptComposer renders the tutor system prompt. It holds no mutable state,
// so one value is safe to share between requests.
type PromptComposer struct {
	persona Persona
}

func NewPromptComposer(persona Persona) *PromptComposer {
	if persona.Name == "" {
		persona.Name = DefaultPersona.Name
	}
	if persona.Animal == "" {
		persona.Animal = DefaultPersona.Animal
	}
	if persona.Subject == "" {
		persona.Subject = DefaultPersona.Subject
	}
	return &PromptComposer{persona: persona}
}

const (
	maxFieldLength  = 100
	maxTopicsLength = 300
)

var assistantRoles = map[string]bool{
	"teacher":   true,
	"professor": true,
	"admin":     true,
	"docente":   true,
}

// IsAssistantRole reports whether role selects the teacher-facing assistant
// prompt instead of the tutor prompt.
func IsAssistantRole(role string) bool {
	return assistantRoles[strings.ToLower(strings.TrimSpace(role))]
}

// ValidateProfile checks required fields and rejects values that could break
// out of their line in the prompt. Grade and learning style are only required
// for students.
func ValidateProfile(p models.StudentProfile) error {
	fieldErrors := make(map[string]string)
	student := !IsAssistantRole(p.Role)

	checkText := func(field, value string, required bool, limit int) {
		switch {
		case strings.TrimSpace(value) == "":
			if required {
				fieldErrors[field] = "is required"
			}
		case utf8.RuneCountInString(value) > limit:
			fieldErrors[field] = fmt.Sprintf("must be at most %d characters", limit)
		case strings.IndexFunc(value, unicode.IsControl) >= 0:
			fieldErrors[field] = "must not contain control characters or line breaks"
		}
	}

	checkText("name", p.Name, true, maxFieldLength)
	checkText("level", p.GradeLevel, student, maxFieldLength)
	checkText("learningType", p.LearningStyle, student, maxFieldLength)
	checkText("language", p.Language, false, maxFieldLength)
	checkText("role", p.Role, false, maxFieldLength)
	checkText("subject", p.Subject, false, maxFieldLength)
	checkText("currentTopics", p.CurrentTopics, false, maxTopicsLength)

	for topic, score := range p.TopicsProgress {
		field := "topics_progress." + topic
		checkText(field, topic, true, maxFieldLength)
		if _, bad := fieldErrors[field]; !bad && (score < 0 || score > 100) {
			fieldErrors[field] = "score must be between 0 and 100"
		}
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}

// Render builds the system prompt for p. The output depends only on the
// persona and p; topics are emitted in name order. Teacher roles get the
// assistant prompt from renderAssistant.
func (c *PromptComposer) Render(p models.StudentProfile) (string, error) {
	if err := ValidateProfile(p); err != nil {
		return "", err
	}
	if IsAssistantRole(p.Role) {
		return c.renderAssistant(p), nil
	}
	style, err := ParseLearningStyle(p.LearningStyle)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	// Layer 1 — Persona and classroom
	fmt.Fprintf(&b, "You are %s, an enthusiastic %s who loves teaching %s. You are a friendly AI tutor helping students during their classes.\n\n",
		c.persona.Name, c.persona.Animal, c.persona.Subject)
	b.WriteString(`CLASSROOM CONTEXT:
- The student has access to their NOTEBOOK for writing, drawing, and solving problems
- They can make notes, diagrams, and calculations on paper
- They are in a learning environment with basic materials (pencil, paper, eraser)
- You are a chat assistant within an application

`)

	// Layer 2 — Student profile
	b.WriteString("STUDENT PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Grade: %s\n", p.GradeLevel)
	fmt.Fprintf(&b, "- Learning style: %s\n", p.LearningStyle)
	writeClassContext(&b, p)
	b.WriteString("\n")

	// Layer 3 — Progress
	hasProgress := len(p.TopicsProgress) > 0
	if hasProgress {
		writeProgress(&b, p.TopicsProgress)
	}

	// Layer 4 — Pedagogy
	b.WriteString(`TEACHING PHILOSOPHY:
1. GUIDED DISCOVERY: Never give direct answers. Ask strategic questions that lead students to discover solutions themselves.
2. PRACTICAL NOTEBOOK USE: Encourage active use of the notebook for problem-solving.

`)
	fmt.Fprintf(&b, "LEARNING STYLE ADAPTATION - PRACTICAL ACTIVITIES (%s):\n", p.Name)
	b.WriteString(styleBlocks[style])
	b.WriteString(`
CONCRETE TEACHING METHODS:
1. "I DO, WE DO, YOU DO":
   - I DO: Demonstrate one specific step (explain how I would do it in my notebook)
   - WE DO: Guide through doing the next step together
   - YOU DO: Invite trying the next step in their notebook

2. NOTEBOOK STRATEGIES:
   - "Write down what you already know about the problem"
   - "Draw a workspace for each part"
   - "Use the page to organize your thoughts"
   - "Make a list of what you need to find"

3. IMMEDIATE FEEDBACK:
   - Acknowledge correct thinking immediately
   - Gently correct errors by showing alternatives
   - Celebrate effort and notebook use

MATH-SPECIFIC APPROACH:
- Break problems into 2-3 manageable steps
- Focus on one mathematical operation at a time
- Use memory aids (PEMDAS/BODMAS) when relevant
- Connect to real-world applications

`)

	// Layer 5 — Register
	b.WriteString(`PROHIBITED LANGUAGE - NEVER USE:
- "It could be that..." (too vague)
- "What if we think..." (unclear)
- "Let's figure it out..." (non-specific)
- "Maybe we should..." (indecisive)

REQUIRED LANGUAGE - ALWAYS USE:
- "First, write down in your notebook what the problem is asking"
- "What mathematical operation do we need to use here?"
- "Try solving just this part in your notebook: [specific step]"
- "Excellent, now let's use that for the next step"
- "Draw how you visualize this problem"
- "Write the next operation in your notebook"
- "Check your previous notes about [related topic]"

`)
	if hasProgress {
		b.WriteString(`PROGRESS INTEGRATION:
- Connect to topics they've already mastered to build confidence
- Acknowledge improvement and growth
- Use progress data to adjust difficulty level

`)
	}

	// Layer 6 — Language
	writeLanguage(&b, p)

	// Layer 7 — Closing
	fmt.Fprintf(&b, "Always speak directly to %s, using their name frequently. Provide actionable steps that develop mathematical thinking skills. Celebrate effort and focus on growth mindset.", p.Name)

	return b.String(), nil
}

// renderAssistant builds the prompt for teachers: a direct, professional
// assistant with none of the guided-discovery or modality rules.
func (c *PromptComposer) renderAssistant(p models.StudentProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert academic assistant for teachers, working alongside %s the %s in this %s classroom application.\n\n",
		c.persona.Name, c.persona.Animal, c.persona.Subject)

	b.WriteString("CONTEXT:\n")
	fmt.Fprintf(&b, "- User: Professor %s\n", p.Name)
	writeClassContext(&b, p)
	b.WriteString("\n")

	fmt.Fprintf(&b, `INTERACTION RULES:
1. PROTOCOL: Address the user respectfully as "Professor %s".
2. STYLE: Be direct, efficient, and professional. Avoid childish language and excessive emojis.
3. GOAL: Save the teacher time. Give complete answers, exact solutions, and structured lesson plans.

`, p.Name)

	writeLanguage(&b, p)
	return strings.TrimRight(b.String(), "\n")
}

func writeClassContext(b *strings.Builder, p models.StudentProfile) {
	if subject := strings.TrimSpace(p.Subject); subject != "" {
		fmt.Fprintf(b, "- Subject: %s\n", subject)
	}
	if topics := strings.TrimSpace(p.CurrentTopics); topics != "" {
		fmt.Fprintf(b, "- Class topics: %s\n", topics)
	}
}

func writeLanguage(b *strings.Builder, p models.StudentProfile) {
	if lang := strings.TrimSpace(p.Language); lang != "" && !isEnglish(lang) {
		fmt.Fprintf(b, "LANGUAGE: Respond entirely in %s, no matter which language %s writes in.\n\n", lang, p.Name)
	}
}

func writeProgress(b *strings.Builder, progress map[string]int) {
	topics := make([]string, 0, len(progress))
	for topic := range progress {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	scores := make([]string, len(topics))
	for i, topic := range topics {
		scores[i] = fmt.Sprintf("%s: %d%%", topic, progress[topic])
	}

	b.WriteString("STUDENT'S CURRENT PROGRESS:\n")
	b.WriteString(strings.Join(scores, ", "))
	b.WriteString("\n\nPROGRESS-BASED STRATEGIES:\n")
	for _, d := range bandDirectives {
		fmt.Fprintf(b, "- %s\n", d.directive)
	}

	b.WriteString("\nTOPIC FOCUS:\n")
	for _, topic := range topics {
		score := progress[topic]
		fmt.Fprintf(b, "- %s (%d%%): %s\n", topic, score, bandGuidance(ClassifyScore(score)))
	}
	b.WriteString("\n")
}

func isEnglish(lang string) bool {
	switch strings.ToLower(lang) {
	case "en", "english":
		return true
	}
	return false
}

var styleBlocks = map[LearningStyle]string{
	StyleVisual: `Visual Learners:
- "Draw this problem in your notebook"
- "Create a diagram showing the steps"
- "Use different colors for each operation"
- "Make a simple table or chart"
- "Visualize the problem as a story"
`,
	StyleAuditory: `Auditory Learners:
- "Explain the steps you would take in a quiet voice"
- "Read the problem out loud softly"
- "Think about how you would explain this to a classmate"
- "Use rhythms or verbal patterns to remember steps"
`,
	StyleKinesthetic: `Kinesthetic Learners:
- "Write each step physically in your notebook"
- "Use your finger to trace through calculations"
- "Organize your notebook with spaces for each step"
- "Use hand gestures to represent operations"
- "Circle or underline important parts"
`,
	StyleReadingWriting: `Reading/Writing Learners:
- "Rewrite the problem in your own words"
- "Create a numbered list of steps"
- "Take notes on key concepts"
- "Rewrite important formulas"
`,
}
