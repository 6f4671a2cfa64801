package lessons

// Exercise is one multiple-choice grammar exercise
type Exercise struct {
	ID      int64    `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  string   `json:"-"`
}

// Lesson is one static grammar lesson. The catalog is fixed reference data
// and never changes at runtime.
type Lesson struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Exercises []Exercise `json:"exercises"`
}

var catalog = []Lesson{
	{
		ID:      1,
		Title:   "Ser vs Estar",
		Summary: "Both verbs mean 'to be'. Ser describes identity and permanent traits, estar describes states and locations.",
		Exercises: []Exercise{
			{ID: 1, Prompt: "Yo ___ de España.", Options: []string{"soy", "estoy", "eres", "está"}, Answer: "soy"},
			{ID: 2, Prompt: "El café ___ caliente.", Options: []string{"es", "está", "son", "estás"}, Answer: "está"},
			{ID: 3, Prompt: "Nosotros ___ cansados.", Options: []string{"somos", "estamos", "sois", "están"}, Answer: "estamos"},
		},
	},
	{
		ID:      2,
		Title:   "Present Tense of -ar Verbs",
		Summary: "Regular -ar verbs drop the infinitive ending and take -o, -as, -a, -amos, -áis, -an.",
		Exercises: []Exercise{
			{ID: 1, Prompt: "Ella ___ (hablar) tres idiomas.", Options: []string{"habla", "hablo", "hablan", "hablamos"}, Answer: "habla"},
			{ID: 2, Prompt: "Yo ___ (trabajar) en casa.", Options: []string{"trabajo", "trabaja", "trabajas", "trabajan"}, Answer: "trabajo"},
			{ID: 3, Prompt: "Ellos ___ (cantar) muy bien.", Options: []string{"cantan", "canta", "cantamos", "canto"}, Answer: "cantan"},
		},
	},
	{
		ID:      3,
		Title:   "Gender and Articles",
		Summary: "Nouns are masculine or feminine. Use el/la for definite and un/una for indefinite articles.",
		Exercises: []Exercise{
			{ID: 1, Prompt: "___ problema es difícil.", Options: []string{"El", "La", "Los", "Las"}, Answer: "El"},
			{ID: 2, Prompt: "Necesito ___ manzana.", Options: []string{"una", "un", "unos", "unas"}, Answer: "una"},
			{ID: 3, Prompt: "___ manos están frías.", Options: []string{"Las", "Los", "El", "La"}, Answer: "Las"},
		},
	},
	{
		ID:      4,
		Title:   "Preterite vs Imperfect",
		Summary: "The preterite reports completed past actions, the imperfect describes ongoing or habitual past situations.",
		Exercises: []Exercise{
			{ID: 1, Prompt: "Ayer ___ (comer, yo) paella.", Options: []string{"comí", "comía", "como", "comeré"}, Answer: "comí"},
			{ID: 2, Prompt: "De niño ___ (jugar, yo) al fútbol cada día.", Options: []string{"jugaba", "jugué", "juego", "jugaré"}, Answer: "jugaba"},
			{ID: 3, Prompt: "Cuando llegué, ella ___ (dormir).", Options: []string{"dormía", "durmió", "duerme", "dormirá"}, Answer: "dormía"},
		},
	},
	{
		ID:      5,
		Title:   "Direct Object Pronouns",
		Summary: "Lo, la, los, las replace direct objects and precede a conjugated verb.",
		Exercises: []Exercise{
			{ID: 1, Prompt: "¿Ves el coche? Sí, ___ veo.", Options: []string{"lo", "la", "le", "los"}, Answer: "lo"},
			{ID: 2, Prompt: "¿Compraste las flores? Sí, ___ compré.", Options: []string{"las", "los", "la", "les"}, Answer: "las"},
			{ID: 3, Prompt: "¿Me escuchas? Sí, te ___.", Options: []string{"escucho", "escuchas", "escucha", "escuchan"}, Answer: "escucho"},
		},
	},
}

// All returns the full lesson catalog
func All() []Lesson {
	return catalog
}

// ByID returns a lesson by ID, or nil when no such lesson exists
func ByID(id int64) *Lesson {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// ScoreExercises grades submitted answers against a lesson's exercises.
// The rule matches quiz scoring: exact match, score = correct/total*100.
func ScoreExercises(lesson *Lesson, answers map[int64]string) (correct, total int) {
	for _, ex := range lesson.Exercises {
		total++
		if answers[ex.ID] == ex.Answer {
			correct++
		}
	}
	return correct, total
}
