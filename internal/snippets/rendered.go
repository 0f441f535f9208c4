package snippets

import "sort"

// Rendered holds rendered snippet text as language -> chapter -> snippet name -> text.
type Rendered map[string]map[string]map[string]string

// Set stores text at [language][chapter][name], creating intermediate maps on first
// use. An existing value is replaced.
func (r Rendered) Set(language, chapter, name, text string) {
	chapters, ok := r[language]
	if !ok {
		chapters = make(map[string]map[string]string)
		r[language] = chapters
	}
	names, ok := chapters[chapter]
	if !ok {
		names = make(map[string]string)
		chapters[chapter] = names
	}
	names[name] = text
}

// Snippet returns the text stored at [language][chapter][name].
func (r Rendered) Snippet(language, chapter, name string) (string, bool) {
	text, ok := r[language][chapter][name]
	return text, ok
}

// Languages returns the languages in sorted order.
func (r Rendered) Languages() []string {
	return sortedKeys(r)
}

// Chapters returns the chapters rendered for language in sorted order.
func (r Rendered) Chapters(language string) []string {
	return sortedKeys(r[language])
}

// Count returns the total number of stored snippets.
func (r Rendered) Count() int {
	n := 0
	for _, chapters := range r {
		for _, names := range chapters {
			n += len(names)
		}
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
