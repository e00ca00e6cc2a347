package user

import "strings"

// students is the directory of other students discoverable on the
// explore screen.
var students = []string{
	"Sheila Putri",
	"Amir Hakim",
	"Mira Santoso",
	"Haris Pratama",
	"Nia Ramadhani",
	"Budi Sudarsono",
	"Kevin Sanjaya",
	"Greysia Polii",
	"Anthony Ginting",
	"Jonatan Christie",
}

// SearchStudents filters the student directory case-insensitively. An
// empty query returns the full directory.
func SearchStudents(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]string, 0, len(students))
	for _, s := range students {
		if query == "" || strings.Contains(strings.ToLower(s), query) {
			matched = append(matched, s)
		}
	}
	return matched
}
