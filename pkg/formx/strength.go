package formx

import (
	"strings"
	"unicode/utf8"
)

// Strength grades a password from 0 to 4
type Strength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

var strengthLabels = [...]string{"Weak", "Fair", "Good", "Strong"}

// PasswordStrength scores one point each for at least 8 characters, a
// special character, a digit and a letter.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{Label: "Empty"}
	}

	score := 0
	if utf8.RuneCountInString(password) >= 8 {
		score++
	}
	if symbolPattern.MatchString(password) {
		score++
	}
	if strings.IndexFunc(password, isASCIIDigit) >= 0 {
		score++
	}
	if strings.IndexFunc(password, isASCIILetter) >= 0 {
		score++
	}

	if score == 0 {
		return Strength{Label: "Empty"}
	}
	return Strength{Score: score, Label: strengthLabels[score-1]}
}
