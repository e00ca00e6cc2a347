package notes

import "strings"

// communityNotes is the shared library of notes posted by other students.
// Visibility is gated on friendship with the author.
var communityNotes = []CatalogNote{
	{
		Author:  "Sheila Putri",
		Title:   "UX Design Frameworks",
		Code:    "KMK3323",
		Content: "A comprehensive guide to UX frameworks including Agile UX, Lean UX, and Design Thinking. Key phases: Empathize, Define, Ideate, Prototype, Test.",
	},
	{
		Author:  "Amir Hakim",
		Title:   "Matlab Tutorial for Computer Vision",
		Code:    "KMK3103",
		Content: "Steps to initialize computer vision toolbox in Matlab. 1. Load image using imread(). 2. Convert to grayscale with rgb2gray(). 3. Apply edge detection using edge().",
	},
	{
		Author:  "Mira Santoso",
		Title:   "Intro To Cognitive Science Chapter 2",
		Code:    "KMK123",
		Content: "Mental representations and computational models. Discusses the analogy of the mind as a computer. Topics: Neurons, Artificial Intelligence, and Linguistics.",
	},
	{
		Author:  "Haris Pratama",
		Title:   "Agile Methodology Summary",
		Code:    "KMK456",
		Content: "Focuses on iterative development, customer feedback, and rapid releases. SCRUM, Kanban, and XP are the main frameworks discussed.",
	},
	{
		Author:  "Nia Ramadhani",
		Title:   "Psychology 101 Notes",
		Code:    "PSY101",
		Content: "Basics of human behavior and mental processes. Key theories include Behaviorism, Cognitive Psychology, and Psychoanalysis.",
	},
}

// exploreNotes is the searchable note list on the discovery screen.
var exploreNotes = []CatalogNote{
	{
		Author:  "Sheila",
		Title:   "KMK3103 Template FYP",
		Code:    "KMK3103",
		Content: "This is a detailed template for your Final Year Project reporting. Make sure to follow the referencing guidelines strictly.",
	},
	{
		Author:  "Amir",
		Title:   "Matlab Tutorial for CV",
		Code:    "KMK102",
		Content: "Quick guide for Computer Vision in Matlab. Essential functions: imread, imshow, rgb2gray, and edge detection algorithms.",
	},
	{
		Author:  "Mira",
		Title:   "Computer Graphic Chapter 2",
		Code:    "KMK123",
		Content: "Summary of transformations in 2D and 3D space. Includes rotation matrices, scaling factors, and translation vectors.",
	},
	{
		Author:  "Haris",
		Title:   "What is Agile Summary",
		Code:    "KMK456",
		Content: "Agile is an iterative approach to project management and software development that helps teams deliver value to their customers faster.",
	},
	{
		Author:  "Nia",
		Title:   "Psychology 101 Notes",
		Code:    "PSY101",
		Content: "Basics of human behavior and mental processes. Key theories include Behaviorism, Cognitive Psychology, and Psychoanalysis.",
	},
}

// SearchCatalog filters the discovery note list by title or author,
// case-insensitively. An empty query returns the full list.
func SearchCatalog(query string) []CatalogNote {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]CatalogNote, 0, len(exploreNotes))
	for _, note := range exploreNotes {
		if query == "" ||
			strings.Contains(strings.ToLower(note.Title), query) ||
			strings.Contains(strings.ToLower(note.Author), query) {
			matched = append(matched, note)
		}
	}
	return matched
}

// FriendLibrary returns community notes whose author is a friend of the
// active student.
func FriendLibrary(friends []string) []CatalogNote {
	matched := make([]CatalogNote, 0, len(communityNotes))
	for _, note := range communityNotes {
		for _, friend := range friends {
			if note.Author == friend {
				matched = append(matched, note)
				break
			}
		}
	}
	return matched
}
