// Package i18n holds the interface strings of the game in the three shipped
// languages. Lookups fall back to English so a hole in one catalog never
// blanks the screen.
package i18n

// Lang identifies one of the shipped interface languages.
type Lang string

const (
	English Lang = "en"
	Spanish Lang = "es"
	German  Lang = "de"
)

// All lists the shipped languages in menu order.
func All() []Lang {
	return []Lang{English, Spanish, German}
}

// Parse maps a config value onto a shipped language.
func Parse(s string) (Lang, bool) {
	switch Lang(s) {
	case English, Spanish, German:
		return Lang(s), true
	}
	return "", false
}

// Valid reports whether l is a shipped language.
func (l Lang) Valid() bool {
	_, ok := Parse(string(l))
	return ok
}

// Name returns the language's native display name.
func (l Lang) Name() string {
	switch l {
	case Spanish:
		return "Español"
	case German:
		return "Deutsch"
	default:
		return "English"
	}
}

// Next cycles to the following language in menu order.
func (l Lang) Next() Lang {
	all := All()
	for i, cur := range all {
		if cur == l {
			return all[(i+1)%len(all)]
		}
	}
	return English
}

// Message keys. Values containing printf verbs are documented next to the key
// and must be run through fmt.Sprintf by the caller.
const (
	KeyAppTitle      = "app_title"
	KeyEasyBoard     = "easy_board"
	KeyHardBoard     = "hard_board"
	KeyScore         = "score"      // %d points
	KeyRemaining     = "remaining"  // %d numbers left
	KeySpinning      = "spinning"
	KeyLandedOn      = "landed_on"  // %d
	KeyAnswerPrompt  = "answer_prompt"
	KeyTimeLeft      = "time_left"  // %d seconds
	KeyCorrect       = "verdict_correct"
	KeyClose         = "verdict_close"
	KeyWrong         = "verdict_wrong"
	KeyTimeout       = "verdict_timeout"
	KeyAnswerWas     = "answer_was" // %s
	KeyPoolEmpty     = "pool_empty"
	KeyGameOver      = "game_over"
	KeyFinalScore    = "final_score" // %d
	KeySettingsTitle = "settings_title"
	KeyLanguage      = "language"
	KeySpinSeconds   = "spin_seconds"
	KeyAnswerSeconds = "answer_seconds"
	KeyWheelSize     = "wheel_size"
	KeySaved         = "saved"
	KeyHintSpin      = "hint_spin"
	KeyHintSwitch    = "hint_switch"
	KeyHintSettings  = "hint_settings"
	KeyHintLanguage  = "hint_language"
	KeyHintQuit      = "hint_quit"
	KeyHintSubmit    = "hint_submit"
	KeyHintClose     = "hint_close"
	KeyHintRestart   = "hint_restart"
	KeyHintAdjust    = "hint_adjust"
)

var catalog = map[string]map[Lang]string{
	KeyAppTitle: {
		English: "Trivia Wheel",
		Spanish: "Ruleta de Trivia",
		German:  "Quizrad",
	},
	KeyEasyBoard: {
		English: "Easy",
		Spanish: "Fácil",
		German:  "Leicht",
	},
	KeyHardBoard: {
		English: "Hard",
		Spanish: "Difícil",
		German:  "Schwer",
	},
	KeyScore: {
		English: "Score: %d",
		Spanish: "Puntos: %d",
		German:  "Punkte: %d",
	},
	KeyRemaining: {
		English: "%d numbers left",
		Spanish: "quedan %d números",
		German:  "%d Zahlen übrig",
	},
	KeySpinning: {
		English: "Spinning...",
		Spanish: "Girando...",
		German:  "Dreht sich...",
	},
	KeyLandedOn: {
		English: "The wheel landed on %d",
		Spanish: "La ruleta cayó en %d",
		German:  "Das Rad landete auf %d",
	},
	KeyAnswerPrompt: {
		English: "Your answer",
		Spanish: "Tu respuesta",
		German:  "Deine Antwort",
	},
	KeyTimeLeft: {
		English: "%ds left",
		Spanish: "quedan %ds",
		German:  "noch %ds",
	},
	KeyCorrect: {
		English: "Correct!",
		Spanish: "¡Correcto!",
		German:  "Richtig!",
	},
	KeyClose: {
		English: "Close enough!",
		Spanish: "¡Casi exacto!",
		German:  "Knapp daneben zählt!",
	},
	KeyWrong: {
		English: "Wrong",
		Spanish: "Incorrecto",
		German:  "Falsch",
	},
	KeyTimeout: {
		English: "Time is up",
		Spanish: "Se acabó el tiempo",
		German:  "Zeit ist um",
	},
	KeyAnswerWas: {
		English: "The answer was: %s",
		Spanish: "La respuesta era: %s",
		German:  "Die Antwort war: %s",
	},
	KeyPoolEmpty: {
		English: "Every number on this board has been played",
		Spanish: "Todos los números de este tablero ya salieron",
		German:  "Alle Zahlen auf diesem Brett sind gespielt",
	},
	KeyGameOver: {
		English: "Game over",
		Spanish: "Fin del juego",
		German:  "Spiel vorbei",
	},
	KeyFinalScore: {
		English: "Final score: %d",
		Spanish: "Puntuación final: %d",
		German:  "Endstand: %d",
	},
	KeySettingsTitle: {
		English: "Settings",
		Spanish: "Ajustes",
		German:  "Einstellungen",
	},
	KeyLanguage: {
		English: "Language",
		Spanish: "Idioma",
		German:  "Sprache",
	},
	KeySpinSeconds: {
		English: "Spin duration (s)",
		Spanish: "Duración del giro (s)",
		German:  "Drehdauer (s)",
	},
	KeyAnswerSeconds: {
		English: "Answer time (s)",
		Spanish: "Tiempo de respuesta (s)",
		German:  "Antwortzeit (s)",
	},
	KeyWheelSize: {
		English: "Wheel size",
		Spanish: "Tamaño de la ruleta",
		German:  "Radgröße",
	},
	KeySaved: {
		English: "Settings saved",
		Spanish: "Ajustes guardados",
		German:  "Einstellungen gespeichert",
	},
	KeyHintSpin: {
		English: "spin",
		Spanish: "girar",
		German:  "drehen",
	},
	KeyHintSwitch: {
		English: "switch board",
		Spanish: "cambiar tablero",
		German:  "Brett wechseln",
	},
	KeyHintSettings: {
		English: "settings",
		Spanish: "ajustes",
		German:  "Einstellungen",
	},
	KeyHintLanguage: {
		English: "language",
		Spanish: "idioma",
		German:  "Sprache",
	},
	KeyHintQuit: {
		English: "quit",
		Spanish: "salir",
		German:  "beenden",
	},
	KeyHintSubmit: {
		English: "submit",
		Spanish: "enviar",
		German:  "absenden",
	},
	KeyHintClose: {
		English: "close",
		Spanish: "cerrar",
		German:  "schließen",
	},
	KeyHintRestart: {
		English: "new game",
		Spanish: "nuevo juego",
		German:  "neues Spiel",
	},
	KeyHintAdjust: {
		English: "adjust",
		Spanish: "ajustar",
		German:  "ändern",
	},
}

// T resolves key in lang, falling back to English and finally to the key
// itself so missing entries surface visibly instead of as empty strings.
func T(lang Lang, key string) string {
	msgs, ok := catalog[key]
	if !ok {
		return key
	}
	if s, ok := msgs[lang]; ok {
		return s
	}
	if s, ok := msgs[English]; ok {
		return s
	}
	return key
}
