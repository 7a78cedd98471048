package config

// defaultWords is the built-in Arabic word list: everyday nouns that are
// drawable in 80 seconds.
var defaultWords = []string{
	"قطة", "كلب", "شمس", "قمر", "بيت", "سيارة", "شجرة", "طائر", "سمكة", "زهرة",
	"كتاب", "قلم", "مدرسة", "مستشفى", "طعام", "ماء", "نار", "جبل", "بحر", "صحراء",
	"عين", "أنف", "فم", "يد", "قدم", "رأس", "قلب", "دماغ", "ساعة", "هاتف",
	"حاسوب", "تلفزيون", "باب", "نافذة", "طاولة", "كرسي", "سرير", "مطبخ", "حمام", "حديقة",
}

// builtinDefault returns the fallback configuration used when no config
// files are available.
func builtinDefault() *GameConfig {
	words := make([]string, len(defaultWords))
	copy(words, defaultWords)
	return &GameConfig{
		Name:        "Classic Arabic",
		Description: "The built-in Arabic word list",
		Language:    "ar",
		MaxPlayers:  8,
		MaxRounds:   3,
		TurnSeconds: 80,
		Words:       words,
	}
}
