package recommend

import "fmt"

// BuildPrompt renders the provider instruction for one cleaned
// preference string. The contract is strict: a bare JSON object with a
// "movies" array, 3 to 5 real titles, nothing else. Providers are not
// trusted to comply exactly; ParseMovies stays lenient.
func BuildPrompt(cleanedInput string) string {
	return fmt.Sprintf(`You are a movie recommendation engine.

User preference: %q

Return ONLY valid JSON and NOTHING ELSE in exactly this structure:
{"movies":["Movie 1","Movie 2","Movie 3"]}

Rules:
- Recommend 3 to 5 movies
- Use real, well-known movie titles
- No markdown, no explanations, no extra text`, cleanedInput)
}
